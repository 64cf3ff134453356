package model

import "time"

// KVEntry is one session store key in the SQL backend
type KVEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
