package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"
)

// Table labels run A1..A10, B1..B10, C1..C10.
var (
	tableSections    = []string{"A", "B", "C"}
	tablesPerSection = 10
)

type CreateTableInput struct {
	TableNumber string             `json:"tableNumber" validate:"required"`
	Capacity    int                `json:"capacity" validate:"required,gt=0"`
	Status      models.TableStatus `json:"status"`
}

type UpdateTableInput struct {
	Capacity *int                `json:"capacity"`
	Status   *models.TableStatus `json:"status"`
}

type TableService struct {
	*core
}

func (s *TableService) Create(ctx context.Context, in CreateTableInput) (*models.Table, error) {
	in.TableNumber = strings.TrimSpace(in.TableNumber)
	if err := validate.Struct(in); err != nil {
		return nil, validationf("table number and a positive capacity are required")
	}
	if in.Status == "" {
		in.Status = models.TableAvailable
	}
	if !in.Status.Valid() {
		return nil, validationf("invalid table status %q", in.Status)
	}
	now := s.now().UTC()
	table := &models.Table{
		TableNumber: in.TableNumber,
		Capacity:    in.Capacity,
		Status:      in.Status,
		Created_at:  now,
		Updated_at:  now,
	}
	if err := s.store.Tables.Create(ctx, table); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(fmt.Sprintf("table %s already exists", in.TableNumber))
		}
		return nil, s.fail("could not create table", err)
	}
	return table, nil
}

func (s *TableService) List(ctx context.Context, status string) ([]models.Table, error) {
	filter := repository.TableFilter{Status: models.TableStatus(status)}
	if status != "" && !filter.Status.Valid() {
		return nil, validationf("invalid table status %q", status)
	}
	tables, err := s.store.Tables.List(ctx, filter)
	if err != nil {
		return nil, s.fail("could not list tables", err)
	}
	if tables == nil {
		tables = []models.Table{}
	}
	return tables, nil
}

func (s *TableService) Get(ctx context.Context, number string) (*models.Table, error) {
	table, err := s.store.Tables.GetByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundf("table %s not found", number)
	}
	if err != nil {
		return nil, s.fail("could not load table", err)
	}
	return table, nil
}

func (s *TableService) Update(ctx context.Context, number string, in UpdateTableInput) (*models.Table, error) {
	table, err := s.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return nil, validationf("capacity must be positive")
		}
		table.Capacity = *in.Capacity
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, validationf("invalid table status %q", *in.Status)
		}
		table.Status = *in.Status
	}
	table.Updated_at = s.now().UTC()
	if err := s.store.Tables.Update(ctx, table); err != nil {
		return nil, s.fail("could not update table", err)
	}
	return table, nil
}

// Delete refuses to remove a table whose status says it is occupied or reserved.
func (s *TableService) Delete(ctx context.Context, number string) error {
	table, err := s.Get(ctx, number)
	if err != nil {
		return err
	}
	if table.Status.InUse() {
		return statef("cannot delete table %s while it is %s", number, table.Status)
	}
	if err := s.store.Tables.Delete(ctx, table.ID); err != nil {
		return s.fail("could not delete table", err)
	}
	return nil
}

// AvailableNumbers lists the standard table labels not created yet.
func (s *TableService) AvailableNumbers(ctx context.Context) ([]string, error) {
	tables, err := s.store.Tables.List(ctx, repository.TableFilter{})
	if err != nil {
		return nil, s.fail("could not list tables", err)
	}
	taken := make(map[string]bool, len(tables))
	for _, t := range tables {
		taken[t.TableNumber] = true
	}
	numbers := []string{}
	for _, section := range tableSections {
		for i := 1; i <= tablesPerSection; i++ {
			if n := fmt.Sprintf("%s%d", section, i); !taken[n] {
				numbers = append(numbers, n)
			}
		}
	}
	return numbers, nil
}
