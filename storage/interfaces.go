package storage

import "zomato-etl/models"

// SummaryWriter is the interface any output backend must satisfy.
type SummaryWriter interface {
	Write(header []string, rows []*models.FinalRow) error
}
