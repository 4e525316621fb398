package domain

import "time"

// EntityType is the closed set of things an attachment can hang off.
type EntityType string

const (
	EntityCateringRequest EntityType = "catering_request"
	EntityOnDemand        EntityType = "on_demand"
	EntityUser            EntityType = "user"
	EntityOther           EntityType = "other"
)

// OrderVariantFor maps an entity type to the order variant it can resolve to.
// The second return is false for entity types that never identify an order.
func (t EntityType) OrderVariantFor() (OrderVariant, bool) {
	switch t {
	case EntityCateringRequest:
		return VariantCatering, true
	case EntityOnDemand:
		return VariantOnDemand, true
	default:
		return "", false
	}
}

// FileAttachment is upload metadata. EntityID is a string so that
// client-generated temporary ids and real numeric order ids share one column;
// relinking rewrites it once the order row exists.
type FileAttachment struct {
	ID          uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerUserID uint64     `json:"ownerUserId" gorm:"not null;index"`
	FileName    string     `json:"fileName" gorm:"not null"`
	FileType    string     `json:"fileType"`
	FileSize    int64      `json:"fileSize"`
	StorageKey  string     `json:"storageKey" gorm:"size:64;uniqueIndex;not null"`
	StorageURL  string     `json:"storageUrl"`
	EntityType  EntityType `json:"entityType" gorm:"type:varchar(24);not null;index"`
	EntityID    string     `json:"entityId" gorm:"size:64;index"`
	Category    string     `json:"category"`
	UploadedAt  time.Time  `json:"uploadedAt" gorm:"autoCreateTime"`
}
