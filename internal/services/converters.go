package services

import (
	"time"

	"github.com/google/uuid"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/pkg/utils"
)

func studentTarget(s *db_models.Student) response_models.Macros {
	return response_models.Macros{
		Calories: s.Calories,
		Protein:  s.Protein,
		Fat:      s.Fat,
		Carbs:    s.Carbs,
	}
}

func eventMacros(e db_models.IntakeEvent) response_models.Macros {
	return response_models.Macros{
		Calories: e.Calories,
		Protein:  e.Protein,
		Fat:      e.Fat,
		Carbs:    e.Carbs,
	}
}

func toEventResponse(e db_models.IntakeEvent, loc *time.Location) response_models.IntakeEventResponse {
	resp := response_models.IntakeEventResponse{
		ID:        e.ID.String(),
		StudentID: e.StudentID.String(),
		Name:      e.Name,
		Macros:    eventMacros(e),
		Source:    string(e.Source),
		EatenAt:   utils.FromUnixSeconds(e.EatenAt, loc),
	}
	if e.FoodID != nil {
		id := e.FoodID.String()
		resp.FoodID = &id
	}
	return resp
}

func toStudentResponse(s *db_models.Student) response_models.StudentResponse {
	resp := response_models.StudentResponse{
		ID:        s.ID.String(),
		Login:     s.Login,
		Name:      s.Name,
		Target:    studentTarget(s),
		Gender:    s.Gender,
		Age:       s.Age,
		Height:    s.Height,
		Weight:    s.Weight,
		Activity:  s.Activity,
		IsTeacher: s.IsTeacher,
		City:      s.City,
		School:    s.School,
		Grade:     s.Grade,
	}
	if s.ParentID != nil {
		id := s.ParentID.String()
		resp.ParentID = &id
	}
	return resp
}

func toFoodResponse(f *db_models.FoodItem) response_models.FoodItemResponse {
	return response_models.FoodItemResponse{
		ID:   f.ID.String(),
		Name: f.Name,
		Macros: response_models.Macros{
			Calories: f.Calories,
			Protein:  f.Protein,
			Fat:      f.Fat,
			Carbs:    f.Carbs,
		},
		Type:    string(f.Type),
		Barcode: f.Barcode,
		Image:   f.Image,
		Week:    f.Week,
		Day:     f.Day,
	}
}

func toPackResponse(p *db_models.MenuPack) response_models.MenuPackResponse {
	entries := make([]response_models.MenuPackEntryResponse, 0, len(p.Entries))
	for i := range p.Entries {
		e := p.Entries[i]
		// entries whose food was deleted from the catalog
		if e.Food.ID == uuid.Nil {
			continue
		}
		entries = append(entries, response_models.MenuPackEntryResponse{
			ID:       e.ID.String(),
			Ord:      e.Ord,
			IsActive: e.IsActive,
			Food:     toFoodResponse(&e.Food),
		})
	}
	return response_models.MenuPackResponse{
		ID:      p.ID.String(),
		Week:    p.Week,
		Day:     p.Day,
		Name:    p.Name(),
		Entries: entries,
	}
}
