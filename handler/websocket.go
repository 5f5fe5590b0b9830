package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"restaurant_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const tableBoardChannel = "pos:tables"

var (
	boardClients = make(map[*websocket.Conn]bool)
	boardMu      sync.Mutex
)

// PublishTableBoard fans the table list out to every floor board via Redis,
// so boards on other app instances stay in sync too.
func PublishTableBoard(ctx context.Context, rdb *redis.Client, tables []model.Table) {
	payload, err := json.Marshal(tables)
	if err != nil {
		log.Printf("table board marshal: %v", err)
		return
	}
	if err := rdb.Publish(ctx, tableBoardChannel, payload).Err(); err != nil {
		log.Printf("table board publish: %v", err)
	}
}

// TableBoardSocket keeps one waiter/cashier dashboard connected to the live
// table board.
func TableBoardSocket(db *gorm.DB, rdb *redis.Client) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer func() {
			boardMu.Lock()
			delete(boardClients, c)
			boardMu.Unlock()
			c.Close()
		}()

		boardMu.Lock()
		boardClients[c] = true
		boardMu.Unlock()

		// initial snapshot
		var tables []model.Table
		if err := db.Order("number").Find(&tables).Error; err == nil {
			c.WriteJSON(tables)
		}

		pubsub := rdb.Subscribe(context.Background(), tableBoardChannel)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			payload := []byte(msg.Payload)

			boardMu.Lock()
			for conn := range boardClients {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					conn.Close()
					delete(boardClients, conn)
				}
			}
			boardMu.Unlock()
		}
	}
}
