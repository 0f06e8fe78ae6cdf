package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"curtain-pos/internal/adapters/cli"
	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ucli "github.com/urfave/cli/v2"
)

type stockBackend struct {
	app.Backend
	itemType core.Category
}

func (b *stockBackend) ListStock(_ context.Context, itemType core.Category) ([]core.StockItem, error) {
	b.itemType = itemType
	return []core.StockItem{{ID: "s3", Name: "Brass Rod", Category: core.CategoryPole, Quantity: 4, SellPrice: decimal.NewFromInt(2000)}}, nil
}

func newApp(t *testing.T, b app.Backend, out *bytes.Buffer) *ucli.App {
	t.Helper()
	prev := ucli.OsExiter
	ucli.OsExiter = func(int) {}
	t.Cleanup(func() { ucli.OsExiter = prev })

	build := func(*ucli.Context) (app.ApplicationService, error) {
		return app.NewAppService(b, nil, zerolog.Nop(), app.Options{}), nil
	}
	return cli.NewApp(build, strings.NewReader(""), out)
}

func TestStockCommand(t *testing.T) {
	b := &stockBackend{}
	var out bytes.Buffer
	a := newApp(t, b, &out)

	require.NoError(t, a.RunContext(context.Background(), []string{"curtain-pos", "stock", "--category", "poles"}))
	assert.Equal(t, core.CategoryPole, b.itemType)

	var res app.StockResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Brass Rod", res.Items[0].Name)
}

func TestMissingArguments(t *testing.T) {
	var out bytes.Buffer
	a := newApp(t, &stockBackend{}, &out)

	err := a.RunContext(context.Background(), []string{"curtain-pos", "order"})
	var exit ucli.ExitCoder
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 2, exit.ExitCode())
}

func TestBuildFailure(t *testing.T) {
	prev := ucli.OsExiter
	ucli.OsExiter = func(int) {}
	t.Cleanup(func() { ucli.OsExiter = prev })

	build := func(*ucli.Context) (app.ApplicationService, error) {
		return nil, errors.New("CURTAINPOS_BACKEND_URL is required")
	}
	var out bytes.Buffer
	a := cli.NewApp(build, strings.NewReader(""), &out)

	err := a.RunContext(context.Background(), []string{"curtain-pos", "dashboard"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_URL")
}
