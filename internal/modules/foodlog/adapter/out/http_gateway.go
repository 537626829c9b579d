package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"mealtrack/internal/modules/foodlog/domain"
	foodlogout "mealtrack/internal/modules/foodlog/port/out"
	apperrors "mealtrack/internal/platform/errors"
)

const maxResponseBytes = 4 << 20

// UpstreamError is a non-2xx answer from the food backend.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "…"
	}
	if body == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, body)
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case apperrors.ErrUpstream:
		return true
	case apperrors.ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

type HTTPGateway struct {
	baseURL string
	client  *http.Client
	log     hclog.Logger
}

func NewHTTPGateway(baseURL string, timeout time.Duration, log hclog.Logger) foodlogout.FoodGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("gateway"),
	}
}

func (g *HTTPGateway) ListFoods(ctx context.Context, principal domain.Principal) ([]domain.Entry, error) {
	var records []entryRecord
	if err := g.do(ctx, http.MethodGet, "allFoods", principal, nil, &records); err != nil {
		return nil, err
	}
	return g.toEntries("allFoods", records), nil
}

func (g *HTTPGateway) AddFood(ctx context.Context, principal domain.Principal, submission domain.Submission) ([]domain.Entry, error) {
	body := addFoodRequest{
		FoodName:      submission.FoodName,
		Calories:      submission.Calories,
		Fat:           submission.Fat,
		Protein:       submission.Protein,
		Carbohydrates: submission.Carbohydrates,
		Servings:      submission.Servings,
		MealType:      string(submission.MealType),
	}
	var resp addFoodResponse
	if err := g.do(ctx, http.MethodPut, "addFood", principal, body, &resp); err != nil {
		return nil, err
	}
	return g.toEntries("addFood", resp.Foods), nil
}

func (g *HTTPGateway) do(ctx context.Context, method, op string, principal domain.Principal, payload any, out any) error {
	if strings.TrimSpace(principal.UserID) == "" {
		return fmt.Errorf("%s: user id is required: %w", op, apperrors.ErrUnauthenticated)
	}
	endpoint := g.baseURL + "/users/" + op + "/" + url.PathEscape(principal.UserID)

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("token", "Bearer "+principal.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Op: op, Status: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

type addFoodRequest struct {
	FoodName      string `json:"foodName"`
	Calories      string `json:"calories"`
	Fat           string `json:"fat"`
	Protein       string `json:"protein"`
	Carbohydrates string `json:"carbohydrates"`
	Servings      string `json:"servings"`
	MealType      string `json:"mealType"`
}

type addFoodResponse struct {
	Foods []entryRecord `json:"foods"`
}

type entryRecord struct {
	Hash          string     `json:"hash"`
	ObjectID      string     `json:"_id"`
	FoodName      string     `json:"foodName"`
	Calories      flexNumber `json:"calories"`
	Protein       flexNumber `json:"protein"`
	Carbohydrates flexNumber `json:"carbohydrates"`
	Fat           flexNumber `json:"fat"`
	Servings      flexNumber `json:"servings"`
	MealType      string     `json:"mealType"`
}

// toEntries keeps every record. A numeric field the backend stored as
// unreadable text counts as zero and is logged, so one bad entry never
// hides the rest of the day.
func (g *HTTPGateway) toEntries(op string, records []entryRecord) []domain.Entry {
	out := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		id := r.Hash
		if id == "" {
			id = r.ObjectID
		}
		meal, err := domain.ParseMealType(r.MealType)
		if err != nil {
			meal = domain.MealType(r.MealType)
		}
		for _, f := range []struct {
			name string
			n    flexNumber
		}{
			{"calories", r.Calories},
			{"protein", r.Protein},
			{"carbohydrates", r.Carbohydrates},
			{"fat", r.Fat},
			{"servings", r.Servings},
		} {
			if f.n.invalid {
				g.log.Warn("unreadable numeric field", "op", op, "entry", id, "food", r.FoodName, "field", f.name, "value", f.n.raw)
			}
		}
		out = append(out, domain.Entry{
			ID:            id,
			FoodName:      r.FoodName,
			Calories:      r.Calories.value,
			Protein:       r.Protein.value,
			Carbohydrates: r.Carbohydrates.value,
			Fat:           r.Fat.value,
			Servings:      r.Servings.value,
			MealType:      meal,
		})
	}
	return out
}

// flexNumber accepts JSON numbers, numeric strings and null. Entries created
// by older clients were stored with their numbers as text. Anything else
// decodes to zero with invalid set.
type flexNumber struct {
	value   float64
	raw     string
	invalid bool
}

func (n *flexNumber) UnmarshalJSON(raw []byte) error {
	*n = flexNumber{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			n.raw, n.invalid = s, true
			return nil
		}
		n.value = f
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		n.raw, n.invalid = string(raw), true
		return nil
	}
	n.value = f
	return nil
}
