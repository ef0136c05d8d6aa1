package postgres

import "time"

// KVRecord stores one serialized value per key.
type KVRecord struct {
	Key       string    `gorm:"type:text;primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the default table name for GORM.
func (KVRecord) TableName() string {
	return "kv_record"
}
