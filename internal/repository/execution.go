package repository

import (
	"time"
)

type Execution struct {
	ID string `gorm:"primarykey" json:"id"`

	SessionID string `gorm:"index" json:"sessionId,omitempty"`
	Language  string `json:"language"`

	Status    string `json:"status"`
	ExitCode  int    `json:"exitCode"`
	RuntimeMs int64  `json:"runtimeMs"`

	RuntimeMemoryKb int64 `json:"runtimeMemoryKb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Client) InsertExecution(execution *Execution) error {
	return c.DB.Create(execution).Error
}

func (c Client) GetExecution(id string) (*Execution, error) {
	var execution Execution

	if err := c.DB.First(&execution, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &execution, nil
}

// UpdateExecution writes the status, exit code, runtime and memory of the
// execution, zero values included.
func (c Client) UpdateExecution(id string, columns Execution) (bool, error) {
	result := c.DB.Model(&Execution{ID: id}).
		Select("Status", "ExitCode", "RuntimeMs", "RuntimeMemoryKb").
		Updates(columns)

	return result.RowsAffected > 0, result.Error
}
