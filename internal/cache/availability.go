package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
)

// TTL curto: o snapshot de disponibilidade envelhece a cada reserva e a
// revalidação de escrita é quem garante exclusividade, não o cache.
const availabilityTTL = 60 * time.Second

// AvailabilityCache guarda listas de slots por (dia, serviço, passo).
// Com addr vazio o cache vira no-op e a API segue direto no banco.
type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(addr string) *AvailabilityCache {
	if addr == "" {
		return &AvailabilityCache{}
	}

	return &AvailabilityCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func slotsKey(day string, serviceID uint, stepMin int) string {
	return fmt.Sprintf("slots:%s:%d:%d", day, serviceID, stepMin)
}

func (c *AvailabilityCache) GetSlots(
	ctx context.Context,
	day string,
	serviceID uint,
	stepMin int,
) ([]domain.Slot, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotsKey(day, serviceID, stepMin)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) SetSlots(
	ctx context.Context,
	day string,
	serviceID uint,
	stepMin int,
	slots []domain.Slot,
) {

	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, slotsKey(day, serviceID, stepMin), raw, availabilityTTL)
}

// InvalidateDay derruba todos os snapshots do dia depois de uma escrita
// (reserva, cancelamento, folga nova).
func (c *AvailabilityCache) InvalidateDay(ctx context.Context, day string) {
	if c == nil || c.rdb == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("slots:%s:*", day), 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
