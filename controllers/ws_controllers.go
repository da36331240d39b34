package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/restohub/restopos/utils"
	"github.com/restohub/restopos/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth already ran in the middleware chain.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSController struct {
	Hub *ws.Hub
}

func NewWSController(hub *ws.Hub) *WSController {
	return &WSController{Hub: hub}
}

// Connect upgrades the request and parks the connection in the hub.
// Clients are receive-only; inbound frames are drained for control
// messages and otherwise discarded.
func (wc *WSController) Connect(c *gin.Context) {
	p := principalFrom(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("ws: upgrade: %v", err)
		return
	}

	wc.Hub.Register(conn, p.RestaurantID)
	utils.InfoLogger.Printf("ws: client connected restaurant=%d user=%d", p.RestaurantID, p.UserID)

	go func() {
		defer func() {
			wc.Hub.Unregister(conn)
			utils.InfoLogger.Printf("ws: client disconnected restaurant=%d user=%d", p.RestaurantID, p.UserID)
		}()
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		}
	}()
}
