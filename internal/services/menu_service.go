package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"schoolmeal/internal/infra"
	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/internal/repositories"
	"schoolmeal/pkg/utils"
)

type MenuServiceInterface interface {
	GetOrCreatePack(ctx context.Context, actor Actor, week, day int) (*response_models.MenuPackResponse, error)
	AddEntry(ctx context.Context, actor Actor, week, day int, foodID uuid.UUID) (*response_models.MenuPackResponse, error)
	SetEntryActive(ctx context.Context, actor Actor, week, day int, entryID uuid.UUID, active bool) (*response_models.MenuPackResponse, error)
	RemoveEntry(ctx context.Context, actor Actor, week, day int, entryID uuid.UUID) (*response_models.MenuPackResponse, error)
	ListPacks(ctx context.Context) ([]response_models.MenuPackResponse, error)
	TodayMenu(ctx context.Context) (*response_models.TodayMenuResponse, error)
}

type MenuOptions struct {
	CycleStart time.Time
	Location   *time.Location
	Now        func() time.Time
}

func MenuOptionsFromConfig(cfg *infra.Config) MenuOptions {
	return MenuOptions{
		CycleStart: cfg.MenuCycleStart,
		Location:   utils.LoadLocation(cfg.LedgerTimezone),
		Now:        time.Now,
	}
}

type MenuService struct {
	menuRepo repositories.MenuRepository
	foodRepo repositories.FoodRepository
	opts     MenuOptions
}

func NewMenuService(menuRepo repositories.MenuRepository, foodRepo repositories.FoodRepository, opts MenuOptions) MenuServiceInterface {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CycleStart.IsZero() {
		opts.CycleStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &MenuService{
		menuRepo: menuRepo,
		foodRepo: foodRepo,
		opts:     opts,
	}
}

func validateSlot(week, day int) error {
	if week < 1 || week > 2 {
		return utils.NewValidationError("week", "must be 1 or 2")
	}
	if day < 1 || day > 7 {
		return utils.NewValidationError("day", "must be between 1 and 7")
	}
	return nil
}

func canEditMenu(actor Actor) error {
	if actor.Role == RoleCook || actor.Role == RoleAdmin {
		return nil
	}
	return utils.ErrForbidden
}

// CycleSlot places date in the two-week rotation anchored at start.
// Day is the ISO weekday, Monday = 1.
func CycleSlot(date, start time.Time) (week, day int) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(s).Hours() / 24)

	weeks := days / 7
	if days < 0 && days%7 != 0 {
		weeks--
	}
	week = weeks%2 + 1
	if week < 1 {
		week += 2
	}

	day = int(date.Weekday())
	if day == 0 {
		day = 7
	}
	return week, day
}

func (m *MenuService) loadPack(ctx context.Context, week, day int) (*db_models.MenuPack, error) {
	pack, err := m.menuRepo.FindPack(ctx, week, day)
	if err != nil {
		log.Printf("Error loading menu pack %d/%d: %v", week, day, err)
		return nil, utils.ErrDatabaseError
	}
	if pack == nil {
		return nil, utils.ErrPackNotFound
	}
	return pack, nil
}

func (m *MenuService) reloadResponse(ctx context.Context, week, day int) (*response_models.MenuPackResponse, error) {
	pack, err := m.loadPack(ctx, week, day)
	if err != nil {
		return nil, err
	}
	resp := toPackResponse(pack)
	return &resp, nil
}

func (m *MenuService) getOrCreate(ctx context.Context, actor Actor, week, day int) (*db_models.MenuPack, error) {
	pack, err := m.menuRepo.FindPack(ctx, week, day)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pack != nil {
		return pack, nil
	}

	creator := actor.UserID
	pack = &db_models.MenuPack{Week: week, Day: day, CreatedBy: &creator}
	if err := m.menuRepo.CreatePack(ctx, pack); err != nil {
		// lost a race with another cook creating the same slot
		if existing, findErr := m.menuRepo.FindPack(ctx, week, day); findErr == nil && existing != nil {
			return existing, nil
		}
		log.Printf("Error creating menu pack %d/%d: %v", week, day, err)
		return nil, utils.ErrDatabaseError
	}
	log.Printf("Created menu pack %q", pack.Name())
	return pack, nil
}

func (m *MenuService) GetOrCreatePack(ctx context.Context, actor Actor, week, day int) (*response_models.MenuPackResponse, error) {
	if err := canEditMenu(actor); err != nil {
		return nil, err
	}
	if err := validateSlot(week, day); err != nil {
		return nil, err
	}

	pack, err := m.getOrCreate(ctx, actor, week, day)
	if err != nil {
		return nil, err
	}
	resp := toPackResponse(pack)
	return &resp, nil
}

func (m *MenuService) AddEntry(ctx context.Context, actor Actor, week, day int, foodID uuid.UUID) (*response_models.MenuPackResponse, error) {
	if err := canEditMenu(actor); err != nil {
		return nil, err
	}
	if err := validateSlot(week, day); err != nil {
		return nil, err
	}

	food, err := m.foodRepo.FindByID(ctx, foodID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if food == nil {
		return nil, utils.ErrFoodNotFound
	}
	if food.Type != db_models.FoodTypeSchool {
		return nil, utils.NewValidationError("food_id", "only school items can be added to a menu pack")
	}

	pack, err := m.getOrCreate(ctx, actor, week, day)
	if err != nil {
		return nil, err
	}
	if _, err := m.menuRepo.AddEntry(ctx, pack.ID, food.ID); err != nil {
		log.Printf("Error adding %s to pack %s: %v", food.ID, pack.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return m.reloadResponse(ctx, week, day)
}

func (m *MenuService) findEntry(ctx context.Context, week, day int, entryID uuid.UUID) (*db_models.MenuPackEntry, error) {
	pack, err := m.loadPack(ctx, week, day)
	if err != nil {
		return nil, err
	}
	entry, err := m.menuRepo.FindEntry(ctx, pack.ID, entryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if entry == nil {
		return nil, utils.ErrPackEntryNotFound
	}
	return entry, nil
}

func (m *MenuService) SetEntryActive(ctx context.Context, actor Actor, week, day int, entryID uuid.UUID, active bool) (*response_models.MenuPackResponse, error) {
	if err := canEditMenu(actor); err != nil {
		return nil, err
	}
	if err := validateSlot(week, day); err != nil {
		return nil, err
	}

	entry, err := m.findEntry(ctx, week, day, entryID)
	if err != nil {
		return nil, err
	}
	if err := m.menuRepo.SetEntryActive(ctx, entry.ID, active); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return m.reloadResponse(ctx, week, day)
}

func (m *MenuService) RemoveEntry(ctx context.Context, actor Actor, week, day int, entryID uuid.UUID) (*response_models.MenuPackResponse, error) {
	if err := canEditMenu(actor); err != nil {
		return nil, err
	}
	if err := validateSlot(week, day); err != nil {
		return nil, err
	}

	entry, err := m.findEntry(ctx, week, day, entryID)
	if err != nil {
		return nil, err
	}
	if err := m.menuRepo.RemoveEntry(ctx, entry.ID); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return m.reloadResponse(ctx, week, day)
}

func (m *MenuService) ListPacks(ctx context.Context) ([]response_models.MenuPackResponse, error) {
	packs, err := m.menuRepo.ListPacks(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.MenuPackResponse, 0, len(packs))
	for i := range packs {
		out = append(out, toPackResponse(&packs[i]))
	}
	return out, nil
}

// TodayMenu lists the active entries of today's pack. Without a pack it falls
// back to school items assigned directly to today's slot.
func (m *MenuService) TodayMenu(ctx context.Context) (*response_models.TodayMenuResponse, error) {
	today := m.opts.Now().In(m.opts.Location)
	week, day := CycleSlot(today, m.opts.CycleStart)

	resp := &response_models.TodayMenuResponse{
		Date:  today.Format(utils.DayLayout),
		Week:  week,
		Day:   day,
		Name:  db_models.MenuPack{Week: week, Day: day}.Name(),
		Items: []response_models.FoodItemResponse{},
	}

	pack, err := m.menuRepo.FindPack(ctx, week, day)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if pack != nil {
		for _, e := range pack.Entries {
			if e.IsActive && e.Food.ID != uuid.Nil {
				resp.Items = append(resp.Items, toFoodResponse(&e.Food))
			}
		}
		return resp, nil
	}

	items, err := m.foodRepo.ListBySlot(ctx, week, day)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	for i := range items {
		resp.Items = append(resp.Items, toFoodResponse(&items[i]))
	}
	return resp, nil
}
