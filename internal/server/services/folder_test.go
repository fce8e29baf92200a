package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/toolly/toolly/internal/common"
	"github.com/toolly/toolly/internal/server/models"
)

func TestFolderCreate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := &fakeRepoManager{f: &fakeFoldersRepo{}}
	s := NewFolderService(db, rm, testConfig())

	folder, err := s.Create(context.Background(), 7, "Work")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if folder.ID == 0 || folder.Name != "Work" || folder.UserID != 7 {
		t.Fatalf("unexpected folder: %+v", folder)
	}

	if _, err := s.Create(context.Background(), 7, ""); err == nil {
		t.Fatalf("expected validation error for empty name")
	}
	if _, err := s.Create(context.Background(), 7, strings.Repeat("x", 256)); err == nil {
		t.Fatalf("expected validation error for long name")
	}
}

func TestFolderRename_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := &fakeRepoManager{f: &fakeFoldersRepo{renameErr: common.ErrorNotFound}}
	s := NewFolderService(db, rm, testConfig())

	err := s.Rename(context.Background(), 99, 7, "Renamed")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestFolderDelete_CascadesInTx(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		f: &fakeFoldersRepo{},
		t: &fakeTodosRepo{},
		p: &fakePostitsRepo{},
	}
	s := NewFolderService(db, rm, testConfig())

	if err := s.Delete(context.Background(), 3, 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !rm.t.deleteByFolderCalled || !rm.p.deleteByFolderCalled || !rm.f.deleted {
		t.Fatalf("cascade incomplete: todos=%v postits=%v folder=%v",
			rm.t.deleteByFolderCalled, rm.p.deleteByFolderCalled, rm.f.deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestFolderDelete_NotFoundRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		f: &fakeFoldersRepo{deleteErr: common.ErrorNotFound},
		t: &fakeTodosRepo{},
		p: &fakePostitsRepo{},
	}
	s := NewFolderService(db, rm, testConfig())

	err := s.Delete(context.Background(), 99, 7)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestFolderDelete_ContentErrorRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		f: &fakeFoldersRepo{},
		t: &fakeTodosRepo{deleteByFolderErr: errBoom{}},
		p: &fakePostitsRepo{},
	}
	s := NewFolderService(db, rm, testConfig())

	if err := s.Delete(context.Background(), 3, 7); err == nil {
		t.Fatalf("expected error")
	}
	if rm.f.deleted {
		t.Fatalf("folder deleted despite failed cascade step")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestFolderList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := &fakeRepoManager{f: &fakeFoldersRepo{listOut: []*models.Folder{
		{ID: 1, Name: "Work"}, {ID: 2, Name: "Home"},
	}}}
	s := NewFolderService(db, rm, testConfig())

	list, err := s.List(context.Background(), 7)
	if err != nil || len(list) != 2 {
		t.Fatalf("List: got (%v, %v)", list, err)
	}
}
