package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository/memory"
)

func newGroupFixture(t *testing.T) *GroupService {
	t.Helper()
	return NewGroupService(memory.NewGroupRepository(), zap.NewNop())
}

func TestCreateGroup(t *testing.T) {
	svc := newGroupFixture(t)

	group, err := svc.Create(context.Background(), "Backend Team", "standups and planning", "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(group.Members) != 1 || group.Members[0].UserID != "alice" || group.Members[0].Role != model.GroupRoleAdmin {
		t.Fatalf("creator should be the first admin, got %+v", group.Members)
	}

	if _, err := svc.Create(context.Background(), "   ", "", "alice"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestGroupVisibility(t *testing.T) {
	svc := newGroupFixture(t)

	group, err := svc.Create(context.Background(), "Backend Team", "", "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), group.ID, "outsider"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if _, err := svc.GetByID(context.Background(), "missing", "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := svc.AddMember(context.Background(), group.ID, "bob", "alice"); err != nil {
		t.Fatalf("add member: %v", err)
	}
	got, err := svc.GetByID(context.Background(), group.ID, "bob")
	if err != nil {
		t.Fatalf("member get: %v", err)
	}
	if len(got.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(got.Members))
	}

	groups, err := svc.ListForUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("bob groups = %d, want 1", len(groups))
	}
}

func TestGroupAdminOnlyOperations(t *testing.T) {
	svc := newGroupFixture(t)

	group, err := svc.Create(context.Background(), "Backend Team", "", "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AddMember(context.Background(), group.ID, "bob", "alice"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	// Plain members cannot manage the group.
	if err := svc.Update(context.Background(), group.ID, "Renamed", "", "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("update err = %v, want ErrNotOwner", err)
	}
	if err := svc.AddMember(context.Background(), group.ID, "carol", "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("add err = %v, want ErrNotOwner", err)
	}
	if err := svc.RemoveMember(context.Background(), group.ID, "alice", "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("remove err = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(context.Background(), group.ID, "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("delete err = %v, want ErrNotOwner", err)
	}

	// Promotion works and grants admin rights.
	if err := svc.SetMemberRole(context.Background(), group.ID, "bob", model.GroupRoleAdmin, "alice"); err != nil {
		t.Fatalf("set role: %v", err)
	}
	if err := svc.Update(context.Background(), group.ID, "Renamed", "new description", "bob"); err != nil {
		t.Fatalf("update after promotion: %v", err)
	}

	if err := svc.SetMemberRole(context.Background(), group.ID, "bob", "owner", "alice"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad role err = %v, want ErrValidation", err)
	}
}

func TestGroupSelfRemoval(t *testing.T) {
	svc := newGroupFixture(t)

	group, err := svc.Create(context.Background(), "Backend Team", "", "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.AddMember(context.Background(), group.ID, "bob", "alice"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	// A plain member may leave on their own.
	if err := svc.RemoveMember(context.Background(), group.ID, "bob", "bob"); err != nil {
		t.Fatalf("self removal: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), group.ID, "bob"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner after leaving", err)
	}
}
