package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ramplink/ramp_link_app/internal/apperrors"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
	"github.com/ramplink/ramp_link_app/internal/platform/notify"
)

// costCodeRules and accountingFieldRules validate bulk-imported rows before
// anything is written.
type costCodeRules struct {
	Account string `validate:"required"`
	Name    string `validate:"required"`
	Status  string `validate:"required,oneof=Active Inactive"`
}

type accountingFieldRules struct {
	JobName      string `validate:"required"`
	PhaseName    string `validate:"required"`
	CategoryName string `validate:"required"`
}

// RampSyncConfig carries the reference-data push target. An empty token
// disables the push.
type RampSyncConfig struct {
	APIURL      string
	AccessToken string
}

// referenceService caches both reference sets in memory, replacing them
// wholesale on import and on change notification so the cascading
// job/phase/category views always see one consistent unit. An empty or
// unreadable stored set falls back to the built-in defaults: selectors must
// never render empty.
type referenceService struct {
	repo       portsrepo.ReferenceRepository
	logger     *slog.Logger
	validate   *validator.Validate
	httpClient *http.Client
	rampCfg    RampSyncConfig

	mu           sync.RWMutex
	costCodes    []domain.CostCode
	codesLoaded  bool
	fields       []domain.AccountingField
	fieldsLoaded bool
}

// NewReferenceService creates the reference-data cache. When events is
// non-nil the service reloads both sets wholesale on every configuration
// change notification.
func NewReferenceService(repo portsrepo.ReferenceRepository, rampCfg RampSyncConfig, events <-chan notify.Event, logger *slog.Logger) portssvc.ReferenceSvcFacade {
	s := &referenceService{
		repo:       repo,
		logger:     logger,
		validate:   validator.New(),
		httpClient: &http.Client{},
		rampCfg:    rampCfg,
	}
	if events != nil {
		go s.watch(events)
	}
	return s
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

func (s *referenceService) watch(events <-chan notify.Event) {
	for range events {
		s.reload()
	}
}

// reload replaces both cached sets from storage in one pass.
func (s *referenceService) reload() {
	ctx := context.Background()

	codes, codesErr := s.repo.GetCostCodes(ctx)
	fields, fieldsErr := s.repo.GetAccountingFields(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if codesErr != nil {
		s.logger.Error("Failed to reload cost codes", slog.String("error", codesErr.Error()))
	} else {
		s.costCodes = codes
		s.codesLoaded = true
	}
	if fieldsErr != nil {
		s.logger.Error("Failed to reload accounting fields", slog.String("error", fieldsErr.Error()))
	} else {
		s.fields = fields
		s.fieldsLoaded = true
	}
}

// CostCodes returns the stored chart of accounts, or the built-in defaults
// when nothing usable is stored.
func (s *referenceService) CostCodes(ctx context.Context) ([]domain.CostCode, error) {
	s.mu.RLock()
	if s.codesLoaded {
		codes := cloneSlice(s.costCodes)
		s.mu.RUnlock()
		return withCostCodeFallback(codes), nil
	}
	s.mu.RUnlock()

	codes, err := s.repo.GetCostCodes(ctx)
	if err != nil {
		s.logger.Warn("Falling back to default cost codes", slog.String("error", err.Error()))
		return domain.DefaultCostCodes(), nil
	}

	s.mu.Lock()
	s.costCodes = codes
	s.codesLoaded = true
	s.mu.Unlock()

	return withCostCodeFallback(cloneSlice(codes)), nil
}

// ActiveCostCodes filters to the entries offered as choices and suggestions.
func (s *referenceService) ActiveCostCodes(ctx context.Context) ([]domain.CostCode, error) {
	codes, err := s.CostCodes(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.CostCode, 0, len(codes))
	for _, c := range codes {
		if c.Status == domain.CostCodeActive {
			active = append(active, c)
		}
	}
	return active, nil
}

// AccountingFields returns the stored job/phase/category tuples, or the
// built-in defaults when nothing usable is stored.
func (s *referenceService) AccountingFields(ctx context.Context) ([]domain.AccountingField, error) {
	s.mu.RLock()
	if s.fieldsLoaded {
		fields := cloneSlice(s.fields)
		s.mu.RUnlock()
		return withFieldFallback(fields), nil
	}
	s.mu.RUnlock()

	fields, err := s.repo.GetAccountingFields(ctx)
	if err != nil {
		s.logger.Warn("Falling back to default accounting fields", slog.String("error", err.Error()))
		return domain.DefaultAccountingFields(), nil
	}

	s.mu.Lock()
	s.fields = fields
	s.fieldsLoaded = true
	s.mu.Unlock()

	return withFieldFallback(cloneSlice(fields)), nil
}

// ImportCostCodes overwrites the stored chart of accounts wholesale. Callers
// pass the complete desired set, never a delta; an empty set is rejected.
func (s *referenceService) ImportCostCodes(ctx context.Context, codes []domain.CostCode) error {
	if len(codes) == 0 {
		return fmt.Errorf("%w: cost code import must contain at least one row", apperrors.ErrValidation)
	}
	for i, c := range codes {
		rules := costCodeRules{Account: c.Account, Name: c.Name, Status: string(c.Status)}
		if err := s.validate.Struct(rules); err != nil {
			return fmt.Errorf("%w: cost code row %d: %v", apperrors.ErrValidation, i+1, err)
		}
	}

	if err := s.repo.SaveCostCodes(ctx, codes); err != nil {
		return fmt.Errorf("failed to save cost codes: %w", err)
	}

	s.mu.Lock()
	s.costCodes = cloneSlice(codes)
	s.codesLoaded = true
	s.mu.Unlock()
	return nil
}

// ImportAccountingFields overwrites the stored tuple set wholesale.
func (s *referenceService) ImportAccountingFields(ctx context.Context, fields []domain.AccountingField) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: accounting field import must contain at least one row", apperrors.ErrValidation)
	}
	for i, f := range fields {
		rules := accountingFieldRules{JobName: f.JobName, PhaseName: f.PhaseName, CategoryName: f.CategoryName}
		if err := s.validate.Struct(rules); err != nil {
			return fmt.Errorf("%w: accounting field row %d: %v", apperrors.ErrValidation, i+1, err)
		}
	}

	if err := s.repo.SaveAccountingFields(ctx, fields); err != nil {
		return fmt.Errorf("failed to save accounting fields: %w", err)
	}

	s.mu.Lock()
	s.fields = cloneSlice(fields)
	s.fieldsLoaded = true
	s.mu.Unlock()
	return nil
}

func (s *referenceService) PhasesForJob(ctx context.Context, jobName string) ([]string, error) {
	fields, err := s.AccountingFields(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PhasesForJob(fields, jobName), nil
}

func (s *referenceService) CategoriesForJobPhase(ctx context.Context, jobName, phaseName string) ([]string, error) {
	fields, err := s.AccountingFields(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CategoriesForJobPhase(fields, jobName, phaseName), nil
}

// SyncToRamp pushes both reference sets to the configured Ramp endpoint in
// one request.
func (s *referenceService) SyncToRamp(ctx context.Context) error {
	if s.rampCfg.AccessToken == "" || s.rampCfg.APIURL == "" {
		return fmt.Errorf("%w: ramp access token is not configured", apperrors.ErrValidation)
	}

	codes, err := s.CostCodes(ctx)
	if err != nil {
		return err
	}
	fields, err := s.AccountingFields(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]any{
		"costCodes":        codes,
		"accountingFields": fields,
	})
	if err != nil {
		return fmt.Errorf("failed to encode ramp sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.rampCfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build ramp sync request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.rampCfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to sync with ramp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("ramp api returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

func withCostCodeFallback(codes []domain.CostCode) []domain.CostCode {
	if len(codes) == 0 {
		return domain.DefaultCostCodes()
	}
	return codes
}

func withFieldFallback(fields []domain.AccountingField) []domain.AccountingField {
	if len(fields) == 0 {
		return domain.DefaultAccountingFields()
	}
	return fields
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
