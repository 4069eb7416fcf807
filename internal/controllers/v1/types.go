package v1

import (
	tolva_uuid "github.com/tolva-app/backend/internal/uuid"
)

type URIID struct {
	ID tolva_uuid.UUID `uri:"id" binding:"required"` // ID of the resource
}
