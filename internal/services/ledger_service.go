package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolmeal/internal/infra"
	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/internal/repositories"
	mem "schoolmeal/pkg/memcache"
	"schoolmeal/pkg/utils"
)

const MaxRangeDays = 366

type LedgerServiceInterface interface {
	RecordIntake(ctx context.Context, actor Actor, studentID uuid.UUID, request request_models.RecordIntakeRequest) (*response_models.IntakeEventResponse, error)
	GetDailySummary(ctx context.Context, actor Actor, studentID uuid.UUID, day time.Time) (*response_models.DailySummary, error)
	GetRangeSummary(ctx context.Context, actor Actor, studentID uuid.UUID, from, to time.Time) (*response_models.RangeSummary, error)
	RecalculateTargets(ctx context.Context, actor Actor, studentID uuid.UUID, request request_models.RecalculateTargetsRequest) (*response_models.StudentResponse, error)
	CurrentRemaining(ctx context.Context, actor Actor) (*response_models.RemainingResponse, error)
	RefreshSession(ctx context.Context, actor Actor) (*response_models.RemainingResponse, error)
	EndSession(ctx context.Context, actor Actor)
	ChildrenOverview(ctx context.Context, actor Actor) ([]response_models.ChildOverview, error)
	Today() time.Time
	Location() *time.Location
}

type LedgerOptions struct {
	Location   *time.Location
	SessionTTL time.Duration
	Now        func() time.Time
}

func LedgerOptionsFromConfig(cfg *infra.Config) LedgerOptions {
	return LedgerOptions{
		Location:   utils.LoadLocation(cfg.LedgerTimezone),
		SessionTTL: cfg.SessionTTL,
		Now:        time.Now,
	}
}

type LedgerService struct {
	db          *gorm.DB
	studentRepo repositories.StudentRepository
	foodRepo    repositories.FoodRepository
	intakeRepo  repositories.IntakeRepository
	cache       mem.RemainingStore

	loc        *time.Location
	sessionTTL time.Duration
	now        func() time.Time
}

func NewLedgerService(
	db *gorm.DB,
	studentRepo repositories.StudentRepository,
	foodRepo repositories.FoodRepository,
	intakeRepo repositories.IntakeRepository,
	cache mem.RemainingStore,
	opts LedgerOptions,
) LedgerServiceInterface {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 5 * time.Minute
	}
	return &LedgerService{
		db:          db,
		studentRepo: studentRepo,
		foodRepo:    foodRepo,
		intakeRepo:  intakeRepo,
		cache:       cache,
		loc:         opts.Location,
		sessionTTL:  opts.SessionTTL,
		now:         opts.Now,
	}
}

func (l *LedgerService) Today() time.Time {
	return l.now().In(l.loc)
}

func (l *LedgerService) Location() *time.Location {
	return l.loc
}

// RecordIntake appends one event to the log. The session snapshot is adjusted
// only after the insert has been committed.
func (l *LedgerService) RecordIntake(ctx context.Context, actor Actor, studentID uuid.UUID, request request_models.RecordIntakeRequest) (*response_models.IntakeEventResponse, error) {
	if err := checkIntakeShape(request); err != nil {
		return nil, err
	}

	tx := infra.StartTransaction(l.db)
	if tx.Error != nil {
		return nil, utils.ErrDatabaseError
	}

	event, err := l.recordIntakeTx(ctx, tx, actor, studentID, request)
	if err = infra.ReleaseTransaction(tx, err); err != nil {
		return nil, serviceError("record intake", err)
	}

	if actor.isSelf(studentID) && actor.SessionID != "" {
		l.applyToSnapshot(ctx, actor.SessionID, event)
	}

	resp := toEventResponse(*event, l.loc)
	return &resp, nil
}

func checkIntakeShape(request request_models.RecordIntakeRequest) error {
	refs := 0
	if request.FoodID != nil && strings.TrimSpace(*request.FoodID) != "" {
		refs++
	}
	if request.Barcode != nil && strings.TrimSpace(*request.Barcode) != "" {
		refs++
	}
	if request.AdHoc != nil {
		refs++
	}
	if refs != 1 {
		return utils.NewValidationError("food", "exactly one of food_id, barcode or ad_hoc is required")
	}
	return nil
}

func (l *LedgerService) recordIntakeTx(ctx context.Context, tx *gorm.DB, actor Actor, studentID uuid.UUID, request request_models.RecordIntakeRequest) (*db_models.IntakeEvent, error) {
	student, err := l.studentRepo.WithTx(tx).FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}
	if err := canAccess(actor, student); err != nil {
		return nil, err
	}

	event := &db_models.IntakeEvent{
		StudentID: studentID,
		EatenAt:   l.now().Unix(),
	}
	var details map[string]interface{}

	if request.AdHoc != nil {
		name, macros, err := ValidateAdHoc(*request.AdHoc)
		if err != nil {
			return nil, err
		}
		event.Name = name
		setEventMacros(event, macros)
		event.Source = db_models.IntakeSourceManual
		if request.AdHoc.Source == string(db_models.IntakeSourceEstimate) {
			event.Source = db_models.IntakeSourceEstimate
		}
		details = map[string]interface{}{}
		if s := strings.TrimSpace(request.AdHoc.ServingSize); s != "" {
			details["serving_size"] = s
		}
	} else {
		food, err := l.resolveFood(ctx, tx, request)
		if err != nil {
			return nil, err
		}
		macros, scaleDetails, err := ScaleFood(food, request.Grams, request.Portions)
		if err != nil {
			return nil, err
		}
		foodID := food.ID
		event.FoodID = &foodID
		event.Name = food.Name
		event.Source = db_models.IntakeSourceCatalog
		setEventMacros(event, macros)
		details = scaleDetails
		if food.Barcode != nil && request.Barcode != nil {
			details["barcode"] = *food.Barcode
		}
	}

	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return nil, err
		}
		event.Details = datatypes.JSON(raw)
	}

	if err := l.intakeRepo.WithTx(tx).Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (l *LedgerService) resolveFood(ctx context.Context, tx *gorm.DB, request request_models.RecordIntakeRequest) (*db_models.FoodItem, error) {
	repo := l.foodRepo.WithTx(tx)

	var (
		food *db_models.FoodItem
		err  error
	)
	if request.FoodID != nil && strings.TrimSpace(*request.FoodID) != "" {
		id, parseErr := uuid.Parse(strings.TrimSpace(*request.FoodID))
		if parseErr != nil {
			return nil, utils.NewValidationError("food_id", "must be a valid id")
		}
		food, err = repo.FindByID(ctx, id)
	} else {
		food, err = repo.FindByBarcode(ctx, strings.TrimSpace(*request.Barcode))
	}
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, utils.ErrFoodNotFound
	}
	return food, nil
}

func setEventMacros(e *db_models.IntakeEvent, m response_models.Macros) {
	e.Calories = m.Calories
	e.Protein = m.Protein
	e.Fat = m.Fat
	e.Carbs = m.Carbs
}

func (l *LedgerService) applyToSnapshot(ctx context.Context, sessionID string, event *db_models.IntakeEvent) {
	studentID := event.StudentID.String()
	day := utils.DayKey(time.Unix(event.EatenAt, 0), l.loc)

	l.cache.Update(ctx, sessionID, func(snap *mem.RemainingSnapshot) {
		if snap.StudentID != studentID || snap.Day != day {
			return
		}
		snap.Calories = round1(snap.Calories - event.Calories)
		snap.Protein = round1(snap.Protein - event.Protein)
		snap.Fat = round1(snap.Fat - event.Fat)
		snap.Carbs = round1(snap.Carbs - event.Carbs)
		snap.Eaten = append(snap.Eaten, event.Name)
	})
}

func (l *LedgerService) loadAccessible(ctx context.Context, actor Actor, studentID uuid.UUID) (*db_models.Student, error) {
	student, err := l.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		log.Printf("Error loading student %s: %v", studentID, err)
		return nil, utils.ErrDatabaseError
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}
	if err := canAccess(actor, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (l *LedgerService) GetDailySummary(ctx context.Context, actor Actor, studentID uuid.UUID, day time.Time) (*response_models.DailySummary, error) {
	student, err := l.loadAccessible(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}
	return l.dailySummary(ctx, student, day)
}

func (l *LedgerService) dailySummary(ctx context.Context, student *db_models.Student, day time.Time) (*response_models.DailySummary, error) {
	start, end := utils.DayWindow(day, l.loc)

	events, err := l.intakeRepo.ListBetween(ctx, student.ID, start.Unix(), end.Unix())
	if err != nil {
		log.Printf("Error listing intake for %s: %v", student.ID, err)
		return nil, utils.ErrDatabaseError
	}

	target := studentTarget(student)
	bucket := l.bucket(start, target, events)

	return &response_models.DailySummary{
		StudentID: student.ID.String(),
		Day:       bucket.Day,
		Target:    target,
		Consumed:  bucket.Consumed,
		Remaining: bucket.Remaining,
		Events:    bucket.Events,
	}, nil
}

// bucket sums events for one day. Sums are rounded once per field after
// adding, so the result does not depend on event order.
func (l *LedgerService) bucket(day time.Time, target response_models.Macros, events []db_models.IntakeEvent) response_models.DayBucket {
	sorted := append([]db_models.IntakeEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EatenAt != sorted[j].EatenAt {
			return sorted[i].EatenAt < sorted[j].EatenAt
		}
		return sorted[i].CreatedAt < sorted[j].CreatedAt
	})

	var consumed response_models.Macros
	out := make([]response_models.IntakeEventResponse, 0, len(sorted))
	for _, e := range sorted {
		consumed = consumed.Add(eventMacros(e))
		out = append(out, toEventResponse(e, l.loc))
	}
	consumed = roundMacros(consumed)

	return response_models.DayBucket{
		Day:       utils.DayKey(day, l.loc),
		Consumed:  consumed,
		Remaining: roundMacros(target.Sub(consumed)),
		Events:    out,
	}
}

func (l *LedgerService) GetRangeSummary(ctx context.Context, actor Actor, studentID uuid.UUID, from, to time.Time) (*response_models.RangeSummary, error) {
	start := utils.StartOfDay(from, l.loc)
	last := utils.StartOfDay(to, l.loc)
	if last.Before(start) {
		return nil, utils.NewValidationError("to", "must not be before from")
	}

	var days []time.Time
	for d := start; !d.After(last); d = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, l.loc) {
		days = append(days, d)
		if len(days) > MaxRangeDays {
			return nil, utils.NewValidationError("to", "range must not exceed 366 days")
		}
	}
	_, end := utils.DayWindow(last, l.loc)

	student, err := l.loadAccessible(ctx, actor, studentID)
	if err != nil {
		return nil, err
	}

	events, err := l.intakeRepo.ListBetween(ctx, student.ID, start.Unix(), end.Unix())
	if err != nil {
		log.Printf("Error listing intake for %s: %v", student.ID, err)
		return nil, utils.ErrDatabaseError
	}

	byDay := make(map[string][]db_models.IntakeEvent, len(days))
	for _, e := range events {
		key := utils.DayKey(time.Unix(e.EatenAt, 0), l.loc)
		byDay[key] = append(byDay[key], e)
	}

	target := studentTarget(student)
	summary := &response_models.RangeSummary{
		StudentID: student.ID.String(),
		From:      utils.DayKey(start, l.loc),
		To:        utils.DayKey(last, l.loc),
		Target:    target,
		Days:      make([]response_models.DayBucket, 0, len(days)),
	}

	var total response_models.Macros
	for _, d := range days {
		b := l.bucket(d, target, byDay[utils.DayKey(d, l.loc)])
		summary.Days = append(summary.Days, b)
		total = total.Add(b.Consumed)
	}
	summary.Total = roundMacros(total)

	return summary, nil
}

func (l *LedgerService) RecalculateTargets(ctx context.Context, actor Actor, studentID uuid.UUID, request request_models.RecalculateTargetsRequest) (*response_models.StudentResponse, error) {
	update, err := targetUpdateFor(request)
	if err != nil {
		return nil, err
	}

	tx := infra.StartTransaction(l.db)
	if tx.Error != nil {
		return nil, utils.ErrDatabaseError
	}

	var student *db_models.Student
	err = func() error {
		repo := l.studentRepo.WithTx(tx)
		s, err := repo.FindByID(ctx, studentID)
		if err != nil {
			return err
		}
		if s == nil {
			return utils.ErrStudentNotFound
		}
		if err := canManage(actor, s); err != nil {
			return err
		}
		if err := repo.UpdateTargets(ctx, studentID, update); err != nil {
			return err
		}
		student, err = repo.FindByID(ctx, studentID)
		return err
	}()
	if err = infra.ReleaseTransaction(tx, err); err != nil {
		return nil, serviceError("recalculate targets", err)
	}

	log.Printf("Targets for student %s set to %.1f kcal", studentID, update.Calories)

	resp := toStudentResponse(student)
	return &resp, nil
}

func targetUpdateFor(request request_models.RecalculateTargetsRequest) (repositories.TargetUpdate, error) {
	if request.Calories != nil {
		c := *request.Calories
		if err := inRange("calories", c, 0, MaxCalorieGoal); err != nil || c == 0 {
			return repositories.TargetUpdate{}, utils.NewValidationError("calories", "must be greater than 0 and at most 10000")
		}
		m := SplitCalories(c)
		return repositories.TargetUpdate{Calories: m.Calories, Protein: m.Protein, Fat: m.Fat, Carbs: m.Carbs}, nil
	}

	profile, err := ValidateProfile(request.Demographics)
	if err != nil {
		return repositories.TargetUpdate{}, err
	}
	m := ComputeTargets(profile)
	return repositories.TargetUpdate{
		Calories: m.Calories,
		Protein:  m.Protein,
		Fat:      m.Fat,
		Carbs:    m.Carbs,
		Gender:   profile.Gender,
		Age:      &profile.Age,
		Height:   &profile.Height,
		Weight:   &profile.Weight,
		Activity: &profile.Activity,
	}, nil
}

// CurrentRemaining serves the session snapshot when it is for today, otherwise
// rebuilds it from the log.
func (l *LedgerService) CurrentRemaining(ctx context.Context, actor Actor) (*response_models.RemainingResponse, error) {
	if actor.Role != RoleStudent {
		return nil, utils.ErrForbidden
	}

	today := l.Today()
	todayKey := utils.DayKey(today, l.loc)

	if actor.SessionID != "" {
		if snap, ok := l.cache.Get(ctx, actor.SessionID); ok &&
			snap.StudentID == actor.UserID.String() && snap.Day == todayKey {
			return snapshotResponse(snap, true), nil
		}
	}

	summary, err := l.GetDailySummary(ctx, actor, actor.UserID, today)
	if err != nil {
		return nil, err
	}

	eaten := make([]string, 0, len(summary.Events))
	for _, e := range summary.Events {
		eaten = append(eaten, e.Name)
	}
	snap := mem.RemainingSnapshot{
		StudentID: summary.StudentID,
		Day:       summary.Day,
		Calories:  summary.Remaining.Calories,
		Protein:   summary.Remaining.Protein,
		Fat:       summary.Remaining.Fat,
		Carbs:     summary.Remaining.Carbs,
		Eaten:     eaten,
	}
	if actor.SessionID != "" {
		l.cache.Set(ctx, actor.SessionID, snap, l.sessionTTL)
	}

	return snapshotResponse(&snap, false), nil
}

func (l *LedgerService) RefreshSession(ctx context.Context, actor Actor) (*response_models.RemainingResponse, error) {
	if actor.SessionID != "" {
		l.cache.Delete(ctx, actor.SessionID)
	}
	return l.CurrentRemaining(ctx, actor)
}

func (l *LedgerService) EndSession(ctx context.Context, actor Actor) {
	if actor.SessionID != "" {
		l.cache.Delete(ctx, actor.SessionID)
	}
}

func snapshotResponse(snap *mem.RemainingSnapshot, cached bool) *response_models.RemainingResponse {
	eaten := snap.Eaten
	if eaten == nil {
		eaten = []string{}
	}
	return &response_models.RemainingResponse{
		StudentID: snap.StudentID,
		Day:       snap.Day,
		Remaining: response_models.Macros{
			Calories: snap.Calories,
			Protein:  snap.Protein,
			Fat:      snap.Fat,
			Carbs:    snap.Carbs,
		},
		Eaten:  eaten,
		Cached: cached,
	}
}

func (l *LedgerService) ChildrenOverview(ctx context.Context, actor Actor) ([]response_models.ChildOverview, error) {
	if actor.Role != RoleParent {
		return nil, utils.ErrForbidden
	}

	children, err := l.studentRepo.ListByParent(ctx, actor.UserID)
	if err != nil {
		log.Printf("Error listing children of %s: %v", actor.UserID, err)
		return nil, utils.ErrDatabaseError
	}

	today := l.Today()
	overview := make([]response_models.ChildOverview, 0, len(children))
	for i := range children {
		child := &children[i]
		summary, err := l.dailySummary(ctx, child, today)
		if err != nil {
			return nil, err
		}
		overview = append(overview, response_models.ChildOverview{
			Student: toStudentResponse(child),
			Today:   *summary,
		})
	}
	return overview, nil
}
