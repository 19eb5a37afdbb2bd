package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"elena-license-engine/internal/model"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetSyncService mirrors the license registry to a Google Sheet so
// the owner can follow client subscriptions outside the application.
// A nil service is valid and every method on it is a no-op.
type SheetSyncService struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetSyncService(enableSync bool, credentialPath, spreadsheetID, sheetName string) (*SheetSyncService, error) {
	if !enableSync {
		return nil, nil
	}

	ctx := context.Background()

	b, err := os.ReadFile(credentialPath)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %v", err)
	}

	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, err
	}

	return &SheetSyncService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// licenseRow is one sheet row: key, client, expiry, machine, duration,
// status (columns A:F).
func licenseRow(license *model.License) []interface{} {
	machine := ""
	if license.MachineID != nil {
		machine = *license.MachineID
	}
	return []interface{}{
		FormatKeyDisplay(license.Key),
		license.ClientID,
		license.ExpiryDate.Format(time.RFC3339),
		machine,
		license.DurationDays,
		license.Status,
	}
}

// SyncLicense updates the sheet row for one license, appending it when
// the key is not present yet.
func (s *SheetSyncService) SyncLicense(license *model.License) error {
	if s == nil {
		return nil
	}

	rangeToSearch := fmt.Sprintf("%s!A2:A", s.sheetName)
	keyResp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeToSearch).Do()
	if err != nil {
		log.Printf("sheet sync: failed to read key column: %v", err)
		return fmt.Errorf("failed to read key column: %v", err)
	}

	display := FormatKeyDisplay(license.Key)
	var rowIndex int
	found := false
	for i, row := range keyResp.Values {
		if len(row) > 0 && row[0] == display {
			found = true
			rowIndex = i + 2 // +2: data starts at A2 and the slice is 0-based
			break
		}
	}

	values := [][]interface{}{licenseRow(license)}

	if found {
		rangeData := fmt.Sprintf("%s!A%d:F%d", s.sheetName, rowIndex, rowIndex)
		_, err = s.service.Spreadsheets.Values.Update(
			s.spreadsheetID,
			rangeData,
			&sheets.ValueRange{Values: values},
		).ValueInputOption("USER_ENTERED").Do()
	} else {
		_, err = s.service.Spreadsheets.Values.Append(
			s.spreadsheetID,
			s.sheetName+"!A2:F",
			&sheets.ValueRange{Values: values},
		).ValueInputOption("USER_ENTERED").Do()
	}

	if err != nil {
		log.Printf("sheet sync: failed to write row for %s: %v", display, err)
		return fmt.Errorf("failed to write row: %v", err)
	}

	return nil
}

// SyncRegistry rewrites the whole registry block, clearing rows that
// no longer have a backing license. Used after revocations.
func (s *SheetSyncService) SyncRegistry(licenses []model.License) error {
	if s == nil {
		return nil
	}

	var values [][]interface{}
	for i := range licenses {
		values = append(values, licenseRow(&licenses[i]))
	}

	clearRange := s.sheetName + "!A2:F"
	_, err := s.service.Spreadsheets.Values.Clear(
		s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{},
	).Do()
	if err != nil {
		log.Printf("sheet sync: failed to clear registry block: %v", err)
		return err
	}

	_, err = s.service.Spreadsheets.Values.Update(
		s.spreadsheetID,
		clearRange,
		&sheets.ValueRange{Values: values},
	).ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		log.Printf("sheet sync: failed to rewrite registry block: %v", err)
		return err
	}

	return nil
}
