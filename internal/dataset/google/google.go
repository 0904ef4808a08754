// Package google reads the operations dataset out of a Google
// spreadsheet, one tab per record type.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"opsboard/internal/core"
	"opsboard/internal/dataset"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ dataset.SnapshotReader = (*Client)(nil)

// Tab names within the spreadsheet. The first row of every tab is a
// header and is skipped.
const (
	teamSheet        = "Team"
	goalsSheet       = "Goals"
	dealsSheet       = "Pipeline"
	venturesSheet    = "Ventures"
	projectsSheet    = "Studio"
	clientsSheet     = "Clients"
	financeSheet     = "Finance"
	complianceSheet  = "Compliance"
	activitiesSheet  = "Weekly"
	mustConquerSheet = "MustConquer"
	winsSheet        = "Wins"
	topOfMindSheet   = "TopOfMind"
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadSnapshot pulls every tab and assembles a validated snapshot.
func (c *Client) ReadSnapshot(ctx context.Context) (core.Snapshot, error) {
	if c.svc == nil {
		return core.Snapshot{}, errors.New("sheets service not initialized")
	}

	var snap core.Snapshot
	var err error

	if snap.Team, err = readRows(ctx, c, teamSheet, parseTeamMember); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Goals, err = readRows(ctx, c, goalsSheet, parseGoal); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Deals, err = readRows(ctx, c, dealsSheet, parseDeal); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Ventures, err = readRows(ctx, c, venturesSheet, parseVenture); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Projects, err = readRows(ctx, c, projectsSheet, parseProject); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Clients, err = readRows(ctx, c, clientsSheet, parseClient); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Compliance, err = readRows(ctx, c, complianceSheet, parseComplianceItem); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Activities, err = readRows(ctx, c, activitiesSheet, parseActivity); err != nil {
		return core.Snapshot{}, err
	}
	if snap.MustConquer, err = readRows(ctx, c, mustConquerSheet, parseMustConquer); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Wins, err = readRows(ctx, c, winsSheet, parseWin); err != nil {
		return core.Snapshot{}, err
	}
	if snap.TopOfMind, err = readRows(ctx, c, topOfMindSheet, parseTopOfMind); err != nil {
		return core.Snapshot{}, err
	}

	finRows, err := c.readTab(ctx, financeSheet)
	if err != nil {
		return core.Snapshot{}, err
	}
	if len(finRows) == 0 {
		return core.Snapshot{}, fmt.Errorf("sheet %s: no finance row", financeSheet)
	}
	if snap.Finance, err = parseFinance(finRows[0]); err != nil {
		return core.Snapshot{}, fmt.Errorf("sheet %s row 2: %w", financeSheet, err)
	}

	if err := snap.Validate(); err != nil {
		return core.Snapshot{}, fmt.Errorf("validate snapshot: %w", err)
	}
	slog.InfoContext(ctx, "snapshot loaded from sheets",
		"deals", len(snap.Deals), "clients", len(snap.Clients), "activities", len(snap.Activities))
	return snap, nil
}

// readRows reads a tab and parses each data row, skipping blank rows.
func readRows[T any](ctx context.Context, c *Client, sheet string, parse func([]string) (T, error)) ([]T, error) {
	rows, err := c.readTab(ctx, sheet)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		cols := toStrings(row)
		if allBlank(cols) {
			continue
		}
		v, err := parse(cols)
		if err != nil {
			// Header is row 1; data starts at row 2.
			return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Client) readTab(ctx context.Context, sheet string) ([][]any, error) {
	rng := fmt.Sprintf("%s!A2:Z", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}
