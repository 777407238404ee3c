package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestAddTaskFormShowsAccountID(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	w := ts.get(t, "/add-task", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add-task form: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/add-task/1") {
		t.Fatalf("add-task form does not target the caller's id: %s", w.Body.String())
	}
}

func TestAddTaskSuccess(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	form := url.Values{"title": {"Buy milk"}, "description": {"2%"}}
	w := ts.postForm(t, "/add-task/1", form, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add-task: status = %d, want 200", w.Code)
	}
	if !containsMessage(w.Body.String(), msgTaskAdded) {
		t.Fatalf("add-task: missing success message")
	}

	tasks, err := ts.tasks.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Description != "2%" {
		t.Fatalf("stored tasks = %+v", tasks)
	}
}

func TestAddTaskPathIDMismatchWritesNothing(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	form := url.Values{"title": {"Buy milk"}, "description": {"2%"}}
	w := ts.postForm(t, "/add-task/999", form, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add-task mismatch: status = %d, want 200", w.Code)
	}
	if !containsMessage(w.Body.String(), msgTaskNotAdded) {
		t.Fatalf("add-task mismatch: missing failure message")
	}
	if ts.taskStore.count() != 0 {
		t.Fatalf("task written despite id mismatch")
	}
}

func TestAddTaskMissingFieldsWritesNothing(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	w := ts.postForm(t, "/add-task/1", url.Values{"title": {"Buy milk"}}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add-task missing field: status = %d, want 200", w.Code)
	}
	if !containsMessage(w.Body.String(), msgTaskNotAdded) {
		t.Fatalf("add-task missing field: missing failure message")
	}
	if ts.taskStore.count() != 0 {
		t.Fatalf("task written despite missing field")
	}
}

func TestAddTaskEmptyPresentFieldsAreInsertable(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	// Presence is the only gate; empty values pass it.
	form := url.Values{"title": {""}, "description": {""}}
	w := ts.postForm(t, "/add-task/1", form, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add-task empty fields: status = %d, want 200", w.Code)
	}
	if !containsMessage(w.Body.String(), msgTaskAdded) {
		t.Fatalf("add-task empty fields: expected success message")
	}
	if ts.taskStore.count() != 1 {
		t.Fatalf("expected 1 task, got %d", ts.taskStore.count())
	}
}

func TestAddTaskGetRedirectsHome(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	w := ts.get(t, "/add-task/1", cookie)
	if w.Code != http.StatusFound || redirectTarget(t, w) != "/" {
		t.Fatalf("GET /add-task/1: status = %d, location = %q", w.Code, redirectTarget(t, w))
	}
}

func TestTasksListsOnlyOwnTasks(t *testing.T) {
	ts := newTestServer(t)
	aliceCookie := ts.register(t, "alice", "pw1")
	bobCookie := ts.register(t, "bob", "pw2")

	ts.postForm(t, "/add-task/1", url.Values{"title": {"alice task"}, "description": {"d"}}, aliceCookie)
	ts.postForm(t, "/add-task/2", url.Values{"title": {"bob task"}, "description": {"d"}}, bobCookie)

	w := ts.get(t, "/tasks", aliceCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("tasks: status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "alice task") {
		t.Fatalf("alice's tasks page missing her task")
	}
	if strings.Contains(body, "bob task") {
		t.Fatalf("alice's tasks page leaks bob's task")
	}
}

func TestDeleteByOwner(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")
	ts.postForm(t, "/add-task/1", url.Values{"title": {"Buy milk"}, "description": {"2%"}}, cookie)

	tasks, _ := ts.tasks.ListByOwner(context.Background(), 1)
	if len(tasks) != 1 {
		t.Fatalf("setup: expected 1 task, got %d", len(tasks))
	}

	w := ts.get(t, fmt.Sprintf("/delete/%d", tasks[0].ID), cookie)
	if w.Code != http.StatusFound || redirectTarget(t, w) != "/tasks" {
		t.Fatalf("delete: status = %d, location = %q", w.Code, redirectTarget(t, w))
	}

	tasks, _ = ts.tasks.ListByOwner(context.Background(), 1)
	if len(tasks) != 0 {
		t.Fatalf("task still present after owner delete")
	}
}

func TestDeleteByNonOwnerIsSilentNoOp(t *testing.T) {
	ts := newTestServer(t)
	aliceCookie := ts.register(t, "alice", "pw1")
	bobCookie := ts.register(t, "bob", "pw2")

	ts.postForm(t, "/add-task/1", url.Values{"title": {"alice task"}, "description": {"d"}}, aliceCookie)
	tasks, _ := ts.tasks.ListByOwner(context.Background(), 1)
	if len(tasks) != 1 {
		t.Fatalf("setup: expected 1 task, got %d", len(tasks))
	}

	// Bob's attempt answers exactly like a successful delete.
	w := ts.get(t, fmt.Sprintf("/delete/%d", tasks[0].ID), bobCookie)
	if w.Code != http.StatusFound || redirectTarget(t, w) != "/tasks" {
		t.Fatalf("non-owner delete: status = %d, location = %q", w.Code, redirectTarget(t, w))
	}

	tasks, _ = ts.tasks.ListByOwner(context.Background(), 1)
	if len(tasks) != 1 {
		t.Fatalf("task removed by non-owner")
	}
}

func TestDeleteMissingTaskRedirectsSilently(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	w := ts.get(t, "/delete/42", cookie)
	if w.Code != http.StatusFound || redirectTarget(t, w) != "/tasks" {
		t.Fatalf("delete missing: status = %d, location = %q", w.Code, redirectTarget(t, w))
	}
}

func TestDeleteNonNumericID(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice", "pw1")

	w := ts.get(t, "/delete/abc", cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete non-numeric id: status = %d, want 404", w.Code)
	}
}

// Full browser scenario: register, log in, add a task, see it listed, delete
// it, see the empty list.
func TestScenarioRegisterAddListDelete(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "pw1")
	cookie := ts.login(t, "alice", "pw1")

	form := url.Values{"title": {"Buy milk"}, "description": {"2%"}}
	w := ts.postForm(t, "/add-task/1", form, cookie)
	if !containsMessage(w.Body.String(), msgTaskAdded) {
		t.Fatalf("add-task failed: %s", w.Body.String())
	}

	w = ts.get(t, "/tasks", cookie)
	if !strings.Contains(w.Body.String(), "Buy milk") || !strings.Contains(w.Body.String(), "2%") {
		t.Fatalf("tasks page missing new task: %s", w.Body.String())
	}

	tasks, _ := ts.tasks.ListByOwner(context.Background(), 1)
	w = ts.get(t, fmt.Sprintf("/delete/%d", tasks[0].ID), cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("delete: status = %d", w.Code)
	}

	w = ts.get(t, "/tasks", cookie)
	if strings.Contains(w.Body.String(), "Buy milk") {
		t.Fatalf("tasks page still shows deleted task")
	}
	if !strings.Contains(w.Body.String(), "No tasks yet") {
		t.Fatalf("tasks page missing empty state: %s", w.Body.String())
	}
}
