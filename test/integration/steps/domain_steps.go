package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"

	"github.com/finance-tracker/companion/test/integration/mock"
)

// registerDomainSteps registers ledger, goal and assistant steps.
func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the following transactions exist:$`, theFollowingTransactionsExist)
	ctx.Given(`^a goal "([^"]*)" exists with target "([^"]*)"$`, aGoalExistsWithTarget)
	ctx.When(`^(\d+) seconds? pass(?:es)?$`, secondsPass)
	ctx.Then(`^the assistant should have (\d+) pending repl(?:y|ies)$`, theAssistantShouldHavePendingReplies)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the chat log mirror should hold (\d+) messages?$`, theChatLogMirrorShouldHoldMessages)
}

// theFollowingTransactionsExist submits every row of the table through the
// API, one second apart so the ledger order follows the table. Columns:
// name, kind, category, amount and optionally date and note.
func theFollowingTransactionsExist(ctx context.Context, table *godog.Table) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if len(table.Rows) < 2 {
		return ctx, fmt.Errorf("transaction table needs a header and at least one row")
	}

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		fields := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			fields[header[i].Value] = cell.Value
		}

		body, err := json.Marshal(fields)
		if err != nil {
			return ctx, err
		}

		tc.clock.Advance(time.Second)
		ctx, err = sendRequest(ctx, http.MethodPost, "/api/v1/transactions", string(body))
		if err != nil {
			return ctx, err
		}
		if err := theResponseStatusShouldBe(ctx, http.StatusCreated); err != nil {
			return ctx, fmt.Errorf("seeding %q: %w", fields["name"], err)
		}
	}
	return ctx, nil
}

func aGoalExistsWithTarget(ctx context.Context, name, target string) (context.Context, error) {
	body, err := json.Marshal(map[string]string{"name": name, "target": target})
	if err != nil {
		return ctx, err
	}

	ctx, err = sendRequest(ctx, http.MethodPost, "/api/v1/goals", string(body))
	if err != nil {
		return ctx, err
	}
	if err := theResponseStatusShouldBe(ctx, http.StatusCreated); err != nil {
		return ctx, fmt.Errorf("seeding goal %q: %w", name, err)
	}
	return iStoreTheResponseFieldAs(ctx, "id", "goal_id")
}

// secondsPass moves the scenario clock and fires every assistant reply
// that came due.
func secondsPass(ctx context.Context, seconds int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	d := time.Duration(seconds) * time.Second
	tc.clock.Advance(d)
	tc.scheduler.Advance(d)
	return nil
}

func theAssistantShouldHavePendingReplies(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if pending := tc.injector.Engine.Pending(); pending != count {
		return fmt.Errorf("expected %d pending replies, got %d", count, pending)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, count int, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	model, ok := tc.db.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	var actual int64
	if err := tc.db.DbConn.Model(model).Count(&actual).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d objects in %s, got %d", count, table, actual)
	}
	return nil
}

func theChatLogMirrorShouldHoldMessages(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	length, err := mock.NewRedis().LLen(ctx, tc.injector.Config.Redis.ChatKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read chat log mirror: %w", err)
	}
	if length != int64(count) {
		return fmt.Errorf("expected %d mirrored messages, got %d", count, length)
	}
	return nil
}
