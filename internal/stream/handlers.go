package stream

import (
	"backend-erickshaw/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})

	r.Get("/ws/:topic", websocket.New(func(c *websocket.Conn) {
		topic := c.Params("topic")
		client := hub.Register(topic)
		defer hub.Unregister(client)

		log := logger.For("stream").WithField("topic", topic)
		log.Debug("websocket client connected")

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(client)
		<-done
		log.Debug("websocket client disconnected")
	}))
}
