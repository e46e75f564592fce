package model

import (
	"time"
)

type Status string

const (
	StatusAvailable    Status = "available"
	StatusBorrowed     Status = "borrowed"
	StatusReadyForNext Status = "ready_for_next"
	StatusInHandoff    Status = "in_handoff"
)

type Book struct {
	ID              string     `json:"id" db:"id"`
	OwnerID         string     `json:"ownerId" db:"owner_id"`
	Title           string     `json:"title" db:"title"`
	Author          string     `json:"author" db:"author"`
	ISBN            string     `json:"isbn,omitempty" db:"isbn"`
	CoverURL        string     `json:"coverUrl,omitempty" db:"cover_url"`
	Status          Status     `json:"status" db:"status"`
	CurrentHolderID string     `json:"currentHolderId" db:"current_holder_id"`
	NextRecipientID *string    `json:"nextRecipientId,omitempty" db:"next_recipient_id"`
	BorrowedAt      *time.Time `json:"borrowedAt,omitempty" db:"borrowed_at"`
	DueDate         *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	RemovedAt       *time.Time `json:"-" db:"removed_at"`
}

func (b Book) NextRecipient() string {
	if b.NextRecipientID == nil {
		return ""
	}
	return *b.NextRecipientID
}

// BookTransition is the full set of mutable possession fields written by a CAS.
type BookTransition struct {
	Status          Status
	CurrentHolderID string
	NextRecipientID *string
	BorrowedAt      *time.Time
	DueDate         *time.Time
}

// Keep returns a transition that leaves every possession field as it is.
func (b Book) Keep() BookTransition {
	return BookTransition{
		Status:          b.Status,
		CurrentHolderID: b.CurrentHolderID,
		NextRecipientID: b.NextRecipientID,
		BorrowedAt:      b.BorrowedAt,
		DueDate:         b.DueDate,
	}
}

type QueueEntry struct {
	BookID   string    `json:"bookId" db:"book_id"`
	MemberID string    `json:"memberId" db:"member_id"`
	Seq      int64     `json:"-" db:"seq"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
	// Position is 1-based and dense; it is computed on read, never stored.
	Position int `json:"position" db:"-"`
}

type HandoffState string

const (
	HandoffOpened            HandoffState = "OPENED"
	HandoffGiverConfirmed    HandoffState = "GIVER_CONFIRMED"
	HandoffReceiverConfirmed HandoffState = "RECEIVER_CONFIRMED"
	HandoffBothConfirmed     HandoffState = "BOTH_CONFIRMED"
)

func (s HandoffState) Terminal() bool {
	return s == HandoffBothConfirmed
}

type Role string

const (
	RoleGiver    Role = "giver"
	RoleReceiver Role = "receiver"
)

type Handoff struct {
	ID                  string       `json:"id" db:"id"`
	BookID              string       `json:"bookId" db:"book_id"`
	GiverID             string       `json:"giverId" db:"giver_id"`
	ReceiverID          string       `json:"receiverId" db:"receiver_id"`
	State               HandoffState `json:"state" db:"state"`
	PriorStatus         Status       `json:"-" db:"prior_status"`
	GiverConfirmedAt    *time.Time   `json:"giverConfirmedAt,omitempty" db:"giver_confirmed_at"`
	ReceiverConfirmedAt *time.Time   `json:"receiverConfirmedAt,omitempty" db:"receiver_confirmed_at"`
	CreatedAt           time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time    `json:"updatedAt" db:"updated_at"`
	CompletedAt         *time.Time   `json:"completedAt,omitempty" db:"completed_at"`
}

func (h Handoff) Terminal() bool {
	return h.State.Terminal()
}

func (h Handoff) Confirmed(role Role) bool {
	if role == RoleGiver {
		return h.GiverConfirmedAt != nil
	}
	return h.ReceiverConfirmedAt != nil
}

// MemberRole reports which side of the handoff memberID is on.
func (h Handoff) MemberRole(memberID string) (Role, bool) {
	switch memberID {
	case h.GiverID:
		return RoleGiver, true
	case h.ReceiverID:
		return RoleReceiver, true
	}
	return "", false
}

type Member struct {
	ID          string    `json:"id" db:"id"`
	DisplayName string    `json:"displayName" db:"display_name"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

type RegisterBookRequest struct {
	Title   string `json:"title" validate:"required,max=512"`
	Author  string `json:"author" validate:"max=256"`
	ISBN    string `json:"isbn" validate:"omitempty,min=10,max=17"`
	OwnerID string `json:"-" validate:"required"`
}

type UpsertMemberRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=128"`
}

type ConfirmHandoffRequest struct {
	Role Role `json:"role" validate:"required,oneof=giver receiver"`
}

// BorrowResult carries either an opened handoff or the requester's queue entry.
type BorrowResult struct {
	Book    Book        `json:"book"`
	Handoff *Handoff    `json:"handoff,omitempty"`
	Queue   *QueueEntry `json:"queueEntry,omitempty"`
}

type DoneReadingResult struct {
	Book    Book     `json:"book"`
	Handoff *Handoff `json:"handoff,omitempty"`
}

type Party struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Confirmed   bool   `json:"confirmed"`
}

// HandoffStatus is the polling snapshot of a handoff.
type HandoffStatus struct {
	Handoff  Handoff `json:"handoff"`
	Giver    Party   `json:"giver"`
	Receiver Party   `json:"receiver"`
	Book     Book    `json:"book"`
}

type QueueSnapshot struct {
	BookID string       `json:"bookId"`
	Items  []QueueEntry `json:"items"`
}

type ListBooks struct {
	Items []Book `json:"items"`
}

type NotificationKind string

const (
	NotifyHandoffOpened    NotificationKind = "handoff_opened"
	NotifyHandoffConfirmed NotificationKind = "handoff_confirmed"
	NotifyHandoffCompleted NotificationKind = "handoff_completed"
	NotifyHandoffCancelled NotificationKind = "handoff_cancelled"
	NotifyHandoffStale     NotificationKind = "handoff_stale"
	NotifyQueueJoined      NotificationKind = "queue_joined"
)

type Notification struct {
	MemberID  string           `json:"memberId"`
	Kind      NotificationKind `json:"kind"`
	Payload   map[string]any   `json:"payload,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

type BookMetadata struct {
	Title    string
	Author   string
	CoverURL string
}
