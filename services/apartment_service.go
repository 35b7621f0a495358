package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"rentease-backend/models"
	"rentease-backend/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Actor is the authenticated staff context attached to every mutation.
// The session layer upstream is trusted completely; no credential checks here.
type Actor struct {
	ID   string
	Role string
}

// Lifecycle actions accepted by Mutate.
const (
	ActionUpdateAll = "update_all"
	ActionDelete    = "delete"
	ActionRestore   = "restore"
)

const codeRetries = 3

// ApartmentService owns apartment creation and lifecycle mutation. Every
// mutation runs in a single transaction with the contended row locked before
// any capacity or consistency decision is made.
type ApartmentService struct {
	DB *gorm.DB
}

func NewApartmentService(db *gorm.DB) *ApartmentService {
	return &ApartmentService{DB: db}
}

// sqlite (the test dialect) has no SELECT ... FOR UPDATE; its transactions
// already serialize writers, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isDuplicateErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	// sqlite and wrapped drivers fall back to message sniffing.
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint")
}

type CreateApartmentInput struct {
	PropertyCode      string
	AgentCode         string
	ApartmentTypeID   uint
	ApartmentTypeUnit int
	RentAmount        float64
	SecurityDeposit   float64
}

type CreateApartmentResult struct {
	ApartmentCode     string    `json:"apartment_code"`
	ApartmentID       uint      `json:"apartment_id"`
	PropertyCode      string    `json:"property_code"`
	ApartmentNumber   int       `json:"apartment_number"`
	RemainingCapacity int       `json:"remaining_capacity"`
	TotalCapacity     int       `json:"total_capacity"`
	Timestamp         time.Time `json:"timestamp"`
}

// Create onboards a new apartment under a property. The property row is
// locked for the whole transaction so two concurrent creations cannot both
// pass the capacity check or claim the same apartment number.
func (s *ApartmentService) Create(in CreateApartmentInput, actor Actor) (*CreateApartmentResult, error) {
	propertyCode := strings.TrimSpace(in.PropertyCode)
	if !utils.PropertyCodePattern.MatchString(propertyCode) {
		return nil, fmt.Errorf("%w: invalid property code", utils.ErrValidation)
	}
	agentCode := strings.TrimSpace(in.AgentCode)
	if agentCode != "" && !utils.PropertyCodePattern.MatchString(agentCode) {
		return nil, fmt.Errorf("%w: invalid agent code", utils.ErrValidation)
	}
	if in.ApartmentTypeID == 0 {
		return nil, fmt.Errorf("%w: apartment type is required", utils.ErrValidation)
	}
	if in.ApartmentTypeUnit < 1 || in.ApartmentTypeUnit > 1000 {
		return nil, fmt.Errorf("%w: apartment type unit must be between 1 and 1000", utils.ErrValidation)
	}
	if in.RentAmount < 0 || in.SecurityDeposit < 0 {
		return nil, fmt.Errorf("%w: rent amount and security deposit must not be negative", utils.ErrValidation)
	}

	log.Printf("apartment create: property=%s actor=%s", propertyCode, actor.ID)

	var result *CreateApartmentResult
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		err := lockForUpdate(tx).
			Where("property_code = ? AND status = ?", propertyCode, "active").
			First(&property).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: property not found or inactive", utils.ErrNotFound)
			}
			return fmt.Errorf("%w: %v", utils.ErrInternal, err)
		}

		// Fail closed: a malformed ceiling blocks creation instead of
		// allowing unbounded inserts.
		maxApartments := property.PropertyTypeUnit
		if maxApartments < 0 {
			maxApartments = 0
		}

		var existing int64
		if err := tx.Model(&models.Apartment{}).
			Where("property_code = ? AND status = ?", property.PropertyCode, models.ApartmentActive).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrInternal, err)
		}
		if existing >= int64(maxApartments) {
			return fmt.Errorf("%w: property %s has reached its maximum capacity of %d units",
				utils.ErrCapacityExceeded, property.PropertyCode, maxApartments)
		}
		apartmentNumber := int(existing) + 1

		// Duplicate guard: the number we are about to claim must not be held
		// by another active apartment.
		var dup int64
		if err := tx.Model(&models.Apartment{}).
			Where("property_code = ? AND apartment_number = ? AND status = ?",
				property.PropertyCode, apartmentNumber, models.ApartmentActive).
			Count(&dup).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrInternal, err)
		}
		if dup > 0 {
			return fmt.Errorf("%w: apartment number %d already exists for property %s",
				utils.ErrConflict, apartmentNumber, property.PropertyCode)
		}

		var agentPtr *string
		if agentCode != "" {
			var agent models.Agent
			if err := tx.Where("agent_code = ? AND status = ?", agentCode, "active").
				First(&agent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: agent not found or inactive", utils.ErrNotFound)
				}
				return fmt.Errorf("%w: %v", utils.ErrInternal, err)
			}
			agentPtr = &agent.AgentCode
		}

		var aptType models.ApartmentType
		if err := tx.Where("id = ? AND status = ?", in.ApartmentTypeID, "active").
			First(&aptType).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: apartment type not found or inactive", utils.ErrNotFound)
			}
			return fmt.Errorf("%w: %v", utils.ErrInternal, err)
		}

		// The generated code is unique only down to the second; the unique
		// index is the real backstop, so retry with a fresh code on collision.
		var apartment models.Apartment
		createErr := fmt.Errorf("%w: could not allocate a unique apartment code", utils.ErrConflict)
		for attempt := 0; attempt < codeRetries; attempt++ {
			apartmentCode := utils.GenerateApartmentCode(
				property.PropertyCode, in.ApartmentTypeUnit, strconv.Itoa(apartmentNumber), time.Now())
			if attempt > 0 {
				// Same second, same inputs -> same code. A random suffix
				// breaks the tie on retry.
				suffix, sErr := utils.CodeSuffix(4)
				if sErr != nil {
					return fmt.Errorf("%w: %v", utils.ErrInternal, sErr)
				}
				apartmentCode = apartmentCode + "-" + suffix
			}
			apartment = models.Apartment{
				ApartmentCode:     apartmentCode,
				PropertyCode:      property.PropertyCode,
				AgentCode:         agentPtr,
				ApartmentTypeID:   aptType.ID,
				ApartmentTypeUnit: in.ApartmentTypeUnit,
				ApartmentNumber:   apartmentNumber,
				RentAmount:        in.RentAmount,
				SecurityDeposit:   in.SecurityDeposit,
				OccupancyStatus:   models.OccupancyVacant,
				Status:            models.ApartmentActive,
				CreatedBy:         actor.ID,
				LastUpdatedBy:     actor.ID,
			}
			err := tx.Create(&apartment).Error
			if err == nil {
				createErr = nil
				break
			}
			if isDuplicateErr(err) {
				log.Printf("apartment code collision (attempt %d) - retrying", attempt+1)
				continue
			}
			return fmt.Errorf("%w: %v", utils.ErrInternal, err)
		}
		if createErr != nil {
			return createErr
		}

		if err := s.appendEvent(tx, apartment.ApartmentCode, "create", actor, map[string]interface{}{
			"property_code":    apartment.PropertyCode,
			"apartment_number": apartment.ApartmentNumber,
			"apartment_type":   aptType.ID,
		}); err != nil {
			return err
		}

		result = &CreateApartmentResult{
			ApartmentCode:     apartment.ApartmentCode,
			ApartmentID:       apartment.ID,
			PropertyCode:      property.PropertyCode,
			ApartmentNumber:   apartmentNumber,
			RemainingCapacity: maxApartments - apartmentNumber,
			TotalCapacity:     maxApartments,
			Timestamp:         time.Now().UTC(),
		}
		return nil
	})
	if txErr != nil {
		log.Printf("apartment create failed: property=%s actor=%s err=%v", propertyCode, actor.ID, txErr)
		return nil, txErr
	}

	log.Printf("apartment create ok: code=%s number=%d remaining=%d",
		result.ApartmentCode, result.ApartmentNumber, result.RemainingCapacity)
	return result, nil
}

type MutateApartmentInput struct {
	ApartmentCode     string
	PropertyCode      string
	AgentCode         string
	ApartmentTypeID   int
	ApartmentTypeUnit int
	Status            models.ApartmentStatus
	ActionType        string
}

// Mutate applies exactly one lifecycle action to an existing apartment:
// update_all (full field update, optionally flipping status), delete
// (soft-delete, status -> 0) or restore (status -> 1). The target row is
// locked for the duration of the transaction.
//
// Lookup scoping is intentionally uneven, matching observed behavior:
// update_all matches (apartment_code, property_code) while delete/restore
// match apartment_code alone.
func (s *ApartmentService) Mutate(in MutateApartmentInput, actor Actor) (string, error) {
	code := strings.TrimSpace(in.ApartmentCode)
	if code == "" {
		return "", fmt.Errorf("%w: apartment code is required", utils.ErrValidation)
	}
	switch in.ActionType {
	case ActionUpdateAll, ActionDelete, ActionRestore:
	default:
		return "", fmt.Errorf("%w: unknown action type %q", utils.ErrValidation, in.ActionType)
	}

	log.Printf("apartment mutate: code=%s action=%s actor=%s role=%s", code, in.ActionType, actor.ID, actor.Role)

	var message string
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var apartment models.Apartment
		var err error
		if in.ActionType == ActionUpdateAll {
			if strings.TrimSpace(in.PropertyCode) == "" {
				return fmt.Errorf("%w: property code is required", utils.ErrValidation)
			}
			err = lockForUpdate(tx).
				Where("apartment_code = ? AND property_code = ?", code, strings.TrimSpace(in.PropertyCode)).
				First(&apartment).Error
		} else {
			err = lockForUpdate(tx).
				Where("apartment_code = ?", code).
				First(&apartment).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: apartment not found", utils.ErrNotFound)
			}
			return fmt.Errorf("%w: %v", utils.ErrInternal, err)
		}

		updates := map[string]interface{}{
			"last_updated_by": actor.ID,
			"updated_at":      time.Now(),
		}
		payload := map[string]interface{}{}

		switch in.ActionType {
		case ActionDelete:
			if actor.Role != models.RoleSuperAdmin {
				return fmt.Errorf("%w: only a Super Admin may deactivate an apartment", utils.ErrForbidden)
			}
			updates["status"] = models.ApartmentInactive
			payload["status"] = models.ApartmentInactive
			message = "Apartment deactivated successfully"

		case ActionRestore:
			if actor.Role != models.RoleSuperAdmin {
				return fmt.Errorf("%w: only a Super Admin may restore an apartment", utils.ErrForbidden)
			}
			updates["status"] = models.ApartmentActive
			payload["status"] = models.ApartmentActive
			message = "Apartment restored successfully"

		case ActionUpdateAll:
			// Deactivation through a generic update is gated exactly like delete.
			if in.Status == models.ApartmentInactive && actor.Role != models.RoleSuperAdmin {
				return fmt.Errorf("%w: only a Super Admin may deactivate an apartment", utils.ErrForbidden)
			}

			agentCode := strings.TrimSpace(in.AgentCode)
			var agentPtr *string
			if agentCode != "" {
				if !utils.PropertyCodePattern.MatchString(agentCode) {
					return fmt.Errorf("%w: invalid agent code", utils.ErrValidation)
				}
				var agent models.Agent
				if err := tx.Where("agent_code = ?", agentCode).First(&agent).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: agent not found", utils.ErrNotFound)
					}
					return fmt.Errorf("%w: %v", utils.ErrInternal, err)
				}
				agentPtr = &agent.AgentCode
			}

			if in.ApartmentTypeID <= 0 {
				return fmt.Errorf("%w: apartment type id must be a positive integer", utils.ErrValidation)
			}
			var aptType models.ApartmentType
			if err := tx.Where("id = ?", in.ApartmentTypeID).First(&aptType).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: apartment type not found", utils.ErrNotFound)
				}
				return fmt.Errorf("%w: %v", utils.ErrInternal, err)
			}
			if in.ApartmentTypeUnit < 1 || in.ApartmentTypeUnit > 1000 {
				return fmt.Errorf("%w: apartment type unit must be between 1 and 1000", utils.ErrValidation)
			}

			updates["agent_code"] = agentPtr
			updates["apartment_type_id"] = aptType.ID
			updates["apartment_type_unit"] = in.ApartmentTypeUnit
			updates["status"] = in.Status
			payload["agent_code"] = agentCode
			payload["apartment_type_id"] = aptType.ID
			payload["apartment_type_unit"] = in.ApartmentTypeUnit
			payload["status"] = in.Status
			message = "Apartment updated successfully"
		}

		if err := tx.Model(&models.Apartment{}).
			Where("id = ?", apartment.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrInternal, err)
		}

		return s.appendEvent(tx, apartment.ApartmentCode, in.ActionType, actor, payload)
	})
	if txErr != nil {
		log.Printf("apartment mutate failed: code=%s action=%s err=%v", code, in.ActionType, txErr)
		return "", txErr
	}

	log.Printf("apartment mutate ok: code=%s action=%s", code, in.ActionType)
	return message, nil
}

// appendEvent writes one audit row inside the caller's transaction.
func (s *ApartmentService) appendEvent(tx *gorm.DB, apartmentCode, action string, actor Actor, payload map[string]interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}
	event := models.ApartmentEvent{
		ApartmentCode: apartmentCode,
		Action:        action,
		ActorID:       actor.ID,
		Payload:       raw,
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}
	return nil
}

type ApartmentListFilter struct {
	Page            int
	Limit           int
	PropertyCode    string
	IncludeInactive bool
}

// List returns a page of apartments, newest first, plus the unpaginated total.
func (s *ApartmentService) List(f ApartmentListFilter) ([]models.Apartment, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	q := s.DB.Model(&models.Apartment{})
	if code := strings.TrimSpace(f.PropertyCode); code != "" {
		q = q.Where("property_code = ?", code)
	}
	if !f.IncludeInactive {
		q = q.Where("status = ?", models.ApartmentActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}

	var apartments []models.Apartment
	if err := q.Preload("ApartmentType").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&apartments).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}
	return apartments, total, nil
}

// Get fetches a single apartment by code, active or not.
func (s *ApartmentService) Get(code string) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := s.DB.Preload("ApartmentType").
		Where("apartment_code = ?", strings.TrimSpace(code)).
		First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: apartment not found", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}
	return &apartment, nil
}

// Events returns the audit trail for an apartment, oldest first.
func (s *ApartmentService) Events(code string) ([]models.ApartmentEvent, error) {
	var events []models.ApartmentEvent
	if err := s.DB.Where("apartment_code = ?", strings.TrimSpace(code)).
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInternal, err)
	}
	return events, nil
}
