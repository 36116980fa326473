package database

import (
	"notekeeper-be/internal/model"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Note{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

type TableStatus struct {
	Table  string
	Exists bool
}

func Status(db *gorm.DB) ([]TableStatus, error) {
	statuses := make([]TableStatus, 0, len(Models()))
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, err
		}
		statuses = append(statuses, TableStatus{
			Table:  stmt.Schema.Table,
			Exists: db.Migrator().HasTable(m),
		})
	}
	return statuses, nil
}
