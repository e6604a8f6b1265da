package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDs are assigned application-side so the schema works on both postgres
// and the sqlite driver used in tests.

func (p *Product) BeforeCreate(*gorm.DB) error        { ensureID(&p.ID); return nil }
func (b *InventoryBatch) BeforeCreate(*gorm.DB) error { ensureID(&b.ID); return nil }
func (l *InventoryLot) BeforeCreate(*gorm.DB) error   { ensureID(&l.ID); return nil }
func (o *Order) BeforeCreate(*gorm.DB) error          { ensureID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(*gorm.DB) error      { ensureID(&i.ID); return nil }
func (a *OrderItemAllocation) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
func (p *Payment) BeforeCreate(*gorm.DB) error        { ensureID(&p.ID); return nil }
func (u *AdminUser) BeforeCreate(*gorm.DB) error      { ensureID(&u.ID); return nil }
func (r *ServiceRequest) BeforeCreate(*gorm.DB) error { ensureID(&r.ID); return nil }
func (l *AuditLog) BeforeCreate(*gorm.DB) error       { ensureID(&l.ID); return nil }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
