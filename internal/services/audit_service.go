package services

import (
	"context"
	"encoding/json"
	"fmt"

	"shesafeBack/internal/models"
	"shesafeBack/utils"
)

// AuditService retains a JSON snapshot of every finished cycle in object
// storage, for evidence if an incident is investigated later.
type AuditService struct {
	Uploader *utils.S3Uploader
}

// StoreCycle uploads one cycle snapshot.
func (s *AuditService) StoreCycle(ctx context.Context, result models.CycleResult) error {
	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s.json", result.CycleID)
	folder := fmt.Sprintf("cycles/%s", result.StartedAt.Format("2006-01-02"))
	_, err = s.Uploader.Upload(ctx, raw, key, folder, "application/json")
	return err
}
