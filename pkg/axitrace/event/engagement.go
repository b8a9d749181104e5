package event

import (
	"maps"
	"strings"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
)

// Subscribe records a newsletter or mailing list signup.
type Subscribe struct {
	Tracking
	email            string
	subscriptionType string
}

// NewSubscribe creates a subscription event for email.
func NewSubscribe(email string, opts ...Option) *Subscribe {
	e := &Subscribe{email: email}
	e.apply(opts)
	return e
}

func (*Subscribe) isEvent() {}

// Kind returns KindSubscribe.
func (*Subscribe) Kind() Kind { return KindSubscribe }

// Endpoint returns the subscribe path.
func (*Subscribe) Endpoint() string { return KindSubscribe.Endpoint() }

// Action returns "subscribe".
func (*Subscribe) Action() string { return KindSubscribe.Action() }

// SetSubscriptionType sets the list or subscription type.
func (e *Subscribe) SetSubscriptionType(t string) *Subscribe {
	e.subscriptionType = t
	return e
}

// Validate checks identity and the email address.
func (e *Subscribe) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	if e.email == "" {
		return axerrors.MissingField("email", e.Action())
	}
	if !IsValidEmail(e.email) {
		return axerrors.InvalidEmail("email", e.Action())
	}
	return nil
}

// Serialize renders {identity..., email, subscription_type?, params?}.
func (e *Subscribe) Serialize() map[string]any {
	data := e.flatIdentity()
	data["email"] = e.email
	if e.subscriptionType != "" {
		data["subscription_type"] = e.subscriptionType
	}
	return nestParams(data, e.params)
}

// StartTrial records the start of a free trial.
type StartTrial struct {
	Tracking
	planName        string
	trialPeriodDays *int
	trialValue      *float64
	trialCurrency   string
	predictedLTV    *float64
	email           string
}

// NewStartTrial creates a trial start for planName.
func NewStartTrial(planName string, opts ...Option) *StartTrial {
	e := &StartTrial{planName: planName}
	e.apply(opts)
	return e
}

func (*StartTrial) isEvent() {}

// Kind returns KindStartTrial.
func (*StartTrial) Kind() Kind { return KindStartTrial }

// Endpoint returns the trial start path.
func (*StartTrial) Endpoint() string { return KindStartTrial.Endpoint() }

// Action returns "start_trial".
func (*StartTrial) Action() string { return KindStartTrial.Action() }

// SetTrialPeriodDays sets the trial length.
func (e *StartTrial) SetTrialPeriodDays(days int) *StartTrial {
	e.trialPeriodDays = &days
	return e
}

// SetTrialValue sets the trial value; the currency is uppercased.
func (e *StartTrial) SetTrialValue(value float64, currency string) *StartTrial {
	e.trialValue = &value
	e.trialCurrency = strings.ToUpper(currency)
	return e
}

// SetPredictedLTV sets the predicted lifetime value.
func (e *StartTrial) SetPredictedLTV(ltv float64) *StartTrial {
	e.predictedLTV = &ltv
	return e
}

// SetEmail sets the trial user's email.
func (e *StartTrial) SetEmail(email string) *StartTrial {
	e.email = email
	return e
}

// Validate checks identity and the plan name.
func (e *StartTrial) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	if e.planName == "" {
		return axerrors.MissingField("plan_name", e.Action())
	}
	return nil
}

// Serialize renders {identity..., plan_name, trial fields?, email?, params?}.
func (e *StartTrial) Serialize() map[string]any {
	data := e.flatIdentity()
	data["plan_name"] = e.planName
	if e.trialPeriodDays != nil {
		data["trial_period_days"] = *e.trialPeriodDays
	}
	if e.trialValue != nil {
		data["trial_value"] = *e.trialValue
	}
	if e.trialCurrency != "" {
		data["trial_currency"] = e.trialCurrency
	}
	if e.predictedLTV != nil {
		data["predicted_ltv"] = *e.predictedLTV
	}
	if e.email != "" {
		data["email"] = e.email
	}
	return nestParams(data, e.params)
}

// Search records a site search.
type Search struct {
	Tracking
	searchTerm   string
	resultsCount *int
	category     string
	filters      map[string]any
	sortBy       string
	page         *int
}

// NewSearch creates a search event for term.
func NewSearch(term string, opts ...Option) *Search {
	e := &Search{searchTerm: term}
	e.apply(opts)
	return e
}

func (*Search) isEvent() {}

// Kind returns KindSearch.
func (*Search) Kind() Kind { return KindSearch }

// Endpoint returns the search path.
func (*Search) Endpoint() string { return KindSearch.Endpoint() }

// Action returns "search".
func (*Search) Action() string { return KindSearch.Action() }

// SetResultsCount sets the number of results shown.
func (e *Search) SetResultsCount(n int) *Search {
	e.resultsCount = &n
	return e
}

// SetCategory sets the searched category.
func (e *Search) SetCategory(category string) *Search {
	e.category = category
	return e
}

// SetFilters sets the applied filters.
func (e *Search) SetFilters(filters map[string]any) *Search {
	e.filters = filters
	return e
}

// SetSortBy sets the sort order.
func (e *Search) SetSortBy(sortBy string) *Search {
	e.sortBy = sortBy
	return e
}

// SetPage sets the result page number.
func (e *Search) SetPage(page int) *Search {
	e.page = &page
	return e
}

// Validate checks identity and the search term.
func (e *Search) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	if e.searchTerm == "" {
		return axerrors.MissingField("search_term", e.Action())
	}
	return nil
}

// Serialize renders {identity..., search_term, params?}. The optional
// search fields are laid over the free-form params inside "params".
func (e *Search) Serialize() map[string]any {
	data := e.flatIdentity()
	data["search_term"] = e.searchTerm

	params := map[string]any(maps.Clone(e.params))
	if params == nil {
		params = make(map[string]any)
	}
	if e.resultsCount != nil {
		params["results_count"] = *e.resultsCount
	}
	if e.category != "" {
		params["category"] = e.category
	}
	if e.filters != nil {
		params["filters"] = maps.Clone(e.filters)
	}
	if e.sortBy != "" {
		params["sort_by"] = e.sortBy
	}
	if e.page != nil {
		params["page"] = *e.page
	}
	return nestParams(data, params)
}
