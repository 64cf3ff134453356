package report

import (
	"fmt"
	"strings"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult is the outcome of reading an accounts sheet
type ImportResult struct {
	Users   []model.User
	Skipped []string // one reason per skipped row
}

// column header -> setter
var userColumns = map[string]func(*model.User, string){
	"name":       func(u *model.User, v string) { u.Name = v },
	"first_name": func(u *model.User, v string) { u.FirstName = v },
	"last_name":  func(u *model.User, v string) { u.LastName = v },
	"email":      func(u *model.User, v string) { u.Email = v },
	"password":   func(u *model.User, v string) { u.Password = v },
	"phone":      func(u *model.User, v string) { u.Phone = v },
	"address":    func(u *model.User, v string) { u.Address = v },
	"city":       func(u *model.User, v string) { u.City = v },
	"state":      func(u *model.User, v string) { u.State = v },
	"zip_code":   func(u *model.User, v string) { u.ZipCode = v },
	"country":    func(u *model.User, v string) { u.Country = v },
}

// UsersFromWorkbook reads accounts from the first sheet. The first row is a
// header naming the columns; email and password are required, rows missing
// either are skipped, and a repeated email keeps its first row.
func UsersFromWorkbook(f *excelize.File) (*ImportResult, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	header := make([]func(*model.User, string), len(rows[0]))
	hasEmail, hasPassword := false, false
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(name))
		name = strings.ReplaceAll(name, " ", "_")
		header[i] = userColumns[name]
		hasEmail = hasEmail || name == "email"
		hasPassword = hasPassword || name == "password"
	}
	if !hasEmail || !hasPassword {
		return nil, fmt.Errorf("sheet %s needs email and password columns", sheet)
	}

	result := &ImportResult{}
	seen := make(map[string]bool)
	for i, row := range rows[1:] {
		line := i + 2

		var user model.User
		for col, value := range row {
			if col < len(header) && header[col] != nil {
				header[col](&user, strings.TrimSpace(value))
			}
		}
		if user.Name == "" {
			user.Name = user.DisplayName()
		}

		if err := user.Validate(); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		key := strings.ToLower(user.Email)
		if seen[key] {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: duplicate email %s", line, user.Email))
			continue
		}
		seen[key] = true
		result.Users = append(result.Users, user)
	}
	return result, nil
}
