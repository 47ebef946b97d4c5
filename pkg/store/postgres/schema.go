package postgres

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The structs below describe the tables for AutoMigrate only; queries go
// through the hand-written repositories.

type residentRow struct {
	ID              string          `gorm:"primaryKey;type:text"`
	EnrollmentNo    string          `gorm:"type:text;not null;default:''"`
	Name            string          `gorm:"type:text;not null"`
	Phone           string          `gorm:"type:text;not null;default:'';index"`
	Address         string          `gorm:"type:text;not null;default:''"`
	Zone            string          `gorm:"type:text;not null;default:''"`
	Unit            string          `gorm:"type:text;not null;default:''"`
	Course          string          `gorm:"type:text;not null;default:''"`
	EnrollmentStart time.Time       `gorm:"type:date"`
	EnrollmentEnd   *time.Time      `gorm:"type:date"`
	Remark          string          `gorm:"type:text;not null;default:''"`
	TotalDue        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SecurityDeposit decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Residency       string          `gorm:"type:text;not null;default:'permanent'"`
	OldResident     bool            `gorm:"not null;default:false"`
	Vacated         bool            `gorm:"not null;default:false"`
	Imported        bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (residentRow) TableName() string { return "residents" }

type receiptRow struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	ResidentID    string          `gorm:"type:text;not null;index"`
	Resident      *residentRow    `gorm:"foreignKey:ResidentID;references:ID;constraint:OnDelete:CASCADE"`
	ReceiptNo     string          `gorm:"type:text;not null;uniqueIndex"`
	ReceiptDate   time.Time       `gorm:"type:date"`
	DateDefaulted bool            `gorm:"not null;default:false"`
	Registration  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Rent          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Utilities     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Misc          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt     time.Time
}

func (receiptRow) TableName() string { return "receipts" }

type aggregateRow struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	ResidentID string          `gorm:"type:text;not null;uniqueIndex:uq_aggregate_resident_period"`
	Resident   *residentRow    `gorm:"foreignKey:ResidentID;references:ID;constraint:OnDelete:CASCADE"`
	Period     string          `gorm:"type:text;not null;uniqueIndex:uq_aggregate_resident_period"`
	TotalDue   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Paid       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Pending    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status     string          `gorm:"type:text;not null;default:'unpaid'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (aggregateRow) TableName() string { return "ledger_aggregates" }

type counterRow struct {
	Name  string `gorm:"primaryKey;type:text"`
	Value int64  `gorm:"not null;default:0"`
}

func (counterRow) TableName() string { return "counters" }

// Migrate creates or updates the schema on the store's connection.
func (s *Store) Migrate() error {
	gdb, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: s.db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open gorm: %w", err)
	}
	if err := gdb.AutoMigrate(&residentRow{}, &receiptRow{}, &aggregateRow{}, &counterRow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
