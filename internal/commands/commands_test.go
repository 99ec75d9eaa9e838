package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"firetask/internal/commands"
	"firetask/internal/config"
	"firetask/internal/exitcode"
	"firetask/internal/service"
	"firetask/internal/session"
	"firetask/internal/testutil"
)

const ownerID = "uid-1"

// runCommand is a helper to run a command with a FakeStore and a fixed
// session.
func runCommand(t *testing.T, cmd commands.Command, store *testutil.FakeStore, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}
	sess := session.Session{UserID: ownerID, Email: "u@example.com"}

	code = cmd.Run(context.Background(), cfg, sess, store, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// seedStore returns a store holding one task per priority for ownerID.
func seedStore() *testutil.FakeStore {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{
		Title:    "Buy milk",
		Priority: service.PriorityMedium,
		Category: service.CategoryHome,
	})
	store.AddTask(ownerID, service.Task{
		Title:    "Fix server",
		Priority: service.PriorityHigh,
		Category: service.CategoryWork,
		Subtasks: []service.Subtask{
			{ID: "s1", Title: "reboot", Completed: true},
			{ID: "s2", Title: "check logs"},
		},
	})
	store.AddTask(ownerID, service.Task{
		Title:     "Water plants",
		Priority:  service.PriorityLow,
		Category:  service.CategoryHome,
		Completed: true,
	})
	return store
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "firetask 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

// Tests for list command
func TestListCommand_SortsByPriority(t *testing.T) {
	store := seedStore()

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	testutil.GoldenString(t, "list_basic", stdout)
}

func TestListCommand_Search(t *testing.T) {
	store := seedStore()

	cmd := &commands.ListCmd{}
	cmd.SetFilters("server", "all", "")
	stdout, _, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   1  [ ] High   Fix server (1/2)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_StatusActive(t *testing.T) {
	store := seedStore()

	cmd := &commands.ListCmd{}
	cmd.SetFilters("", "active", "")
	stdout, _, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Contains(stdout, "Water plants") {
		t.Errorf("active filter should drop completed tasks, got %q", stdout)
	}
	if !strings.Contains(stdout, "Fix server") || !strings.Contains(stdout, "Buy milk") {
		t.Errorf("active filter should keep open tasks, got %q", stdout)
	}
}

func TestListCommand_Category(t *testing.T) {
	store := seedStore()

	cmd := &commands.ListCmd{}
	cmd.SetFilters("", "all", "home")
	stdout, _, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Contains(stdout, "Fix server") {
		t.Errorf("category filter should drop work tasks, got %q", stdout)
	}
}

func TestListCommand_InvalidStatus(t *testing.T) {
	store := seedStore()

	cmd := &commands.ListCmd{}
	cmd.SetFilters("", "open", "")
	_, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid status filter") {
		t.Errorf("expected invalid status error, got %q", stderr)
	}
}

func TestListCommand_Empty(t *testing.T) {
	store := testutil.NewFakeStore()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	store := testutil.NewFakeStore()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, store, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	store := testutil.NewFakeStore()

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, store, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks := store.SnapshotOf(ownerID)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" {
		t.Errorf("expected title 'Buy milk', got %q", tasks[0].Title)
	}
	if tasks[0].Priority != service.PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", tasks[0].Priority)
	}
	if tasks[0].Category != service.CategoryOther {
		t.Errorf("expected default category other, got %q", tasks[0].Category)
	}
	if tasks[0].Completed {
		t.Error("new tasks must start uncompleted")
	}
	if tasks[0].OwnerID != ownerID {
		t.Errorf("expected owner %q, got %q", ownerID, tasks[0].OwnerID)
	}
}

func TestAddCommand_ValidationBlocksStore(t *testing.T) {
	store := testutil.NewFakeStore()

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, store, []string{"   "}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("expected title error, got %q", stderr)
	}
	// Validation resolves locally: the store must not be called at all.
	if store.CreateCalls != 0 {
		t.Errorf("expected 0 create calls, got %d", store.CreateCalls)
	}
}

func TestAddCommand_WithSubtasks(t *testing.T) {
	store := testutil.NewFakeStore()

	cmd := &commands.AddCmd{}
	cmd.SetSubtasks("pack bags", "book hotel")
	_, _, code := runCommand(t, cmd, store, []string{"Trip"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	tasks := store.SnapshotOf(ownerID)
	if len(tasks) != 1 || len(tasks[0].Subtasks) != 2 {
		t.Fatalf("expected 1 task with 2 subtasks, got %+v", tasks)
	}
	if tasks[0].Subtasks[0].Title != "pack bags" || tasks[0].Subtasks[1].Title != "book hotel" {
		t.Errorf("subtask order not preserved: %+v", tasks[0].Subtasks)
	}
}

func TestAddCommand_InvalidPriority(t *testing.T) {
	store := testutil.NewFakeStore()

	cmd := &commands.AddCmd{}
	cmd.SetPriority("urgent")
	_, stderr, code := runCommand(t, cmd, store, []string{"Task"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid priority") {
		t.Errorf("expected invalid priority error, got %q", stderr)
	}
	if store.CreateCalls != 0 {
		t.Errorf("expected 0 create calls, got %d", store.CreateCalls)
	}
}

// Tests for done command
func TestDoneCommand_ToggleTwiceRestores(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{Title: "Buy milk", Priority: service.PriorityMedium})

	_, _, code := runCommand(t, &commands.DoneCmd{}, store, []string{"1"}, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !store.SnapshotOf(ownerID)[0].Completed {
		t.Fatal("expected task completed after first toggle")
	}

	_, _, code = runCommand(t, &commands.DoneCmd{}, store, []string{"1"}, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if store.SnapshotOf(ownerID)[0].Completed {
		t.Error("expected task back to uncompleted after second toggle")
	}
}

func TestDoneCommand_RefersToSortedOrder(t *testing.T) {
	store := seedStore()

	// Position 1 in the listing is the High task, not the first stored one.
	_, _, code := runCommand(t, &commands.DoneCmd{}, store, []string{"1"}, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}

	for _, task := range store.SnapshotOf(ownerID) {
		if task.Title == "Fix server" && !task.Completed {
			t.Error("expected the high-priority task to be toggled")
		}
		if task.Title == "Buy milk" && task.Completed {
			t.Error("expected the medium-priority task untouched")
		}
	}
}

func TestDoneCommand_MissingRef(t *testing.T) {
	store := seedStore()

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number required\n" {
		t.Errorf("expected ref error, got %q", stderr)
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	store := seedStore()

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"9"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "out of range") {
		t.Errorf("expected out of range error, got %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand_RequiresForce(t *testing.T) {
	store := seedStore()

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, store, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "--force") {
		t.Errorf("expected confirmation error, got %q", stderr)
	}
	if store.DeleteCalls != 0 {
		t.Errorf("expected 0 delete calls, got %d", store.DeleteCalls)
	}
}

func TestRmCommand_Force(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{Title: "Old task", Priority: service.PriorityLow})

	cmd := &commands.RmCmd{}
	cmd.SetForce(true)
	stdout, _, code := runCommand(t, cmd, store, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if len(store.SnapshotOf(ownerID)) != 0 {
		t.Error("expected task removed")
	}
}

// Tests for edit command
func TestEditCommand_Title(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{Title: "Old", Priority: service.PriorityMedium})

	cmd := &commands.EditCmd{}
	cmd.SetTitle("New")
	_, _, code := runCommand(t, cmd, store, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := store.SnapshotOf(ownerID)[0].Title; got != "New" {
		t.Errorf("expected title 'New', got %q", got)
	}
	if store.UpdateCalls != 1 {
		t.Errorf("expected 1 update call, got %d", store.UpdateCalls)
	}
}

func TestEditCommand_BlankTitleBlocksStore(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{Title: "Keep me", Priority: service.PriorityMedium})

	cmd := &commands.EditCmd{}
	cmd.SetTitle("   ")
	_, stderr, code := runCommand(t, cmd, store, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("expected title error, got %q", stderr)
	}
	if store.UpdateCalls != 0 {
		t.Errorf("expected 0 update calls, got %d", store.UpdateCalls)
	}
	if got := store.SnapshotOf(ownerID)[0].Title; got != "Keep me" {
		t.Errorf("stored title must be untouched, got %q", got)
	}
}

func TestEditCommand_NothingToUpdate(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{Title: "Same", Priority: service.PriorityMedium})

	cmd := &commands.EditCmd{}
	stdout, _, code := runCommand(t, cmd, store, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "nothing to update\n" {
		t.Errorf("expected 'nothing to update', got %q", stdout)
	}
	if store.UpdateCalls != 0 {
		t.Errorf("expected 0 update calls, got %d", store.UpdateCalls)
	}
}

func TestEditCommand_SubtaskLifecycle(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{Title: "Trip", Priority: service.PriorityMedium})

	// Add two subtasks.
	add := &commands.EditCmd{}
	add.SetAddSubtasks("pack", "book")
	_, _, code := runCommand(t, add, store, []string{"1"}, false)
	if code != exitcode.Success {
		t.Fatalf("add subtasks: expected exit code %d, got %d", exitcode.Success, code)
	}
	subtasks := store.SnapshotOf(ownerID)[0].Subtasks
	if len(subtasks) != 2 || subtasks[0].Title != "pack" || subtasks[1].Title != "book" {
		t.Fatalf("expected subtasks [pack book], got %+v", subtasks)
	}

	// Toggle the first.
	toggle := &commands.EditCmd{}
	toggle.SetToggleSubtask(1)
	_, _, code = runCommand(t, toggle, store, []string{"1"}, false)
	if code != exitcode.Success {
		t.Fatalf("toggle subtask: expected exit code %d, got %d", exitcode.Success, code)
	}
	subtasks = store.SnapshotOf(ownerID)[0].Subtasks
	if !subtasks[0].Completed || subtasks[1].Completed {
		t.Fatalf("expected only first subtask completed, got %+v", subtasks)
	}

	// Remove the first; the survivor keeps its position.
	remove := &commands.EditCmd{}
	remove.SetRemoveSubtask(1)
	_, _, code = runCommand(t, remove, store, []string{"1"}, false)
	if code != exitcode.Success {
		t.Fatalf("remove subtask: expected exit code %d, got %d", exitcode.Success, code)
	}
	subtasks = store.SnapshotOf(ownerID)[0].Subtasks
	if len(subtasks) != 1 || subtasks[0].Title != "book" {
		t.Fatalf("expected surviving subtask 'book', got %+v", subtasks)
	}
}

func TestEditCommand_SubtaskOutOfRange(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask(ownerID, service.Task{Title: "Trip", Priority: service.PriorityMedium})

	cmd := &commands.EditCmd{}
	cmd.SetToggleSubtask(3)
	_, stderr, code := runCommand(t, cmd, store, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "subtask number out of range") {
		t.Errorf("expected subtask range error, got %q", stderr)
	}
}

// Tests for stats command
func TestStatsCommand(t *testing.T) {
	store := seedStore()

	stdout, stderr, code := runCommand(t, &commands.StatsCmd{}, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "total          3\n" +
		"completed      1\n" +
		"active         2\n" +
		"high priority  1\n" +
		"completion     33%\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "u@example.com (uid-1)\n" {
		t.Errorf("expected principal line, got %q", stdout)
	}
}
