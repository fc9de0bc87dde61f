package stock

import (
	"encoding/json"
	"log"

	"stockledger.GO/config"
	entity "stockledger.GO/model/entity"
)

// mutationEvent is the payload published after a committed mutation.
type mutationEvent struct {
	MutationID uint   `json:"mutation_id"`
	ItemID     uint   `json:"item_id"`
	ItemCode   string `json:"item_code"`
	Kind       string `json:"kind"`
	Quantity   int64  `json:"quantity"`
	Balance    int64  `json:"balance"`
}

// publishMutation pushes a committed mutation to Redis when configured.
// Fire-and-forget: the transaction has already committed, and a publish
// failure must never surface to the caller.
func publishMutation(m *entity.StockMutation, item *entity.Item) {
	if config.RedisClient == nil {
		return
	}
	payload, err := json.Marshal(mutationEvent{
		MutationID: m.MutationID,
		ItemID:     m.ItemID,
		ItemCode:   item.Code,
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		Balance:    item.Balance,
	})
	if err != nil {
		return
	}
	if err := config.RedisClient.Publish(config.RedisCtx(), config.MutationChannel, payload).Err(); err != nil {
		log.Printf("mutation publish failed: %v", err)
	}
}
