package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type BranchID = uuid.UUID
type EventID = uuid.UUID
type SermonID = uuid.UUID
type TransactionID = uuid.UUID
type TagID = uuid.UUID
type PostID = uuid.UUID
type MediaID = uuid.UUID
