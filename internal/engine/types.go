package engine

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"

	"github.com/waiviolabs/hive-objects-backend/internal/model"
)

// ObjectStore is the persistence surface the handlers need for objects,
// their fields and the cached projections.
type ObjectStore interface {
	Create(obj *model.Object) error
	Exists(permlink string) (bool, error)
	FindByPermlink(permlink string) (*model.Object, error)
	AppendField(permlink string, field model.Field) error
	Field(permlink, txID string) (*model.Field, error)
	UpsertVote(permlink, txID string, vote model.ActiveVote) error
	SetFieldState(permlink, txID string, weight float64, votes []model.ActiveVote) error
	AddSearchFields(permlink string, terms []string) error
	SetParent(permlink, parent string) error
	SetMap(permlink string, point *model.GeoPoint) error
	SetStatus(permlink, title string) error
	SetTagClouds(permlink string, tags []string) error
	SetRatings(permlink string, ratings []string) error
	AddChild(permlink, child string) error
	AddDepartment(permlink, department string) error
	RemoveDepartment(permlink, department string) error
	GrantAuthority(permlink, level, account string) error
	RevokeAuthority(permlink, level, account string) error
	SetMetaGroupID(permlinks []string, id string) error
	ByGroupIDs(ids []string, excludeMetaGroup string) ([]model.Object, error)
	VotedBy(voter string) ([]model.Object, error)
	CountByDepartment(department string) (int64, error)
	HaveBothDepartments(a, b string) (bool, error)
	ChildrenWithoutMap(parent string) ([]string, error)
}

// StakeStore reads and writes staked token balances.
type StakeStore interface {
	Get(account string) (float64, error)
	Set(account string, stake float64) error
}

// PendingStore keeps fragments of multi-part field bodies.
type PendingStore interface {
	Put(part model.PendingPart) error
	Has(permlink, groupID string, part int) (bool, error)
	Count(permlink, groupID string) (int, error)
	List(permlink, groupID string) ([]model.PendingPart, error)
	DeleteGroup(permlink, groupID string) error
}

// DepartmentStore maintains the department graph.
type DepartmentStore interface {
	FindOrCreate(name, search string) (*model.Department, error)
	AddRelated(name string, related []string) error
	RemoveRelated(name, related string) error
	SetObjectsCount(name string, count int64) error
}

// RestrictionStore answers account restriction checks and keeps shop
// deselect markers.
type RestrictionStore interface {
	IsSpam(account string) (bool, error)
	IsMutedByAny(account string, by []string) (bool, error)
	MarkDeselect(permlink, account string) error
	ClearDeselect(permlink, account string) error
}

// PostChecker answers whether a ledger post exists. Pin and remove updates
// must reference a real post.
type PostChecker interface {
	Exists(ctx context.Context, author, permlink string) (bool, error)
}

// Notifier pushes user-facing events. Implementations never return errors to
// the handlers; a lost notification must not fail an ingestion step.
type Notifier interface {
	RejectUpdate(ctx context.Context, account, permlink, fieldName string)
	StatusChange(ctx context.Context, permlink, status string)
	ObjectCreated(ctx context.Context, creator, permlink, importID string)
}

// ImportSender queues seeded updates for the import service.
type ImportSender interface {
	Send(ctx context.Context, wobjects []model.ImportWobject) error
}
