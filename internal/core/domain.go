package core

import (
	"errors"
	"strings"
	"time"
)

// Deal stages in pipeline order. WON and LOST are terminal.
const (
	StageLead        DealStage = "LEAD"
	StageDiscovery   DealStage = "DISCOVERY"
	StageProposal    DealStage = "PROPOSAL"
	StageNegotiation DealStage = "NEGOTIATION"
	StageContracting DealStage = "CONTRACTING"
	StageWon         DealStage = "WON"
	StageLost        DealStage = "LOST"
)

const (
	VentureIdeaDump  VentureStage = "IDEA_DUMP"
	VentureConcept   VentureStage = "CONCEPT"
	VentureDiscovery VentureStage = "DISCOVERY"
	VentureMVPBuild  VentureStage = "MVP_BUILD"
	VenturePilot     VentureStage = "PILOT"
	VentureLive      VentureStage = "LIVE"
	VentureScaling   VentureStage = "SCALING"
)

const (
	StudioScoping    StudioStage = "SCOPING"
	StudioContracted StudioStage = "CONTRACTED"
	StudioInProgress StudioStage = "IN_PROGRESS"
	StudioReview     StudioStage = "REVIEW"
	StudioComplete   StudioStage = "COMPLETE"
	StudioClosed     StudioStage = "CLOSED"
)

const (
	ClientFirm      ClientStatus = "FIRM"
	ClientAttention ClientStatus = "ATTENTION"
	ClientAtRisk    ClientStatus = "AT_RISK"
	ClientDormant   ClientStatus = "DORMANT"
)

const (
	ComplianceLegal   ComplianceCategory = "LEGAL"
	ComplianceFinance ComplianceCategory = "FINANCE"
	ComplianceHR      ComplianceCategory = "HR"
	ComplianceTax     ComplianceCategory = "TAX"
	ComplianceOther   ComplianceCategory = "OTHER"
)

const (
	StatusDone    ComplianceStatus = "DONE"
	StatusPending ComplianceStatus = "PENDING"
	StatusOverdue ComplianceStatus = "OVERDUE"
)

const (
	AreaCommunityGrowth FocusArea = "COMMUNITY_GROWTH"
	AreaImpactDelivery  FocusArea = "IMPACT_DELIVERY"
	AreaNewFrontiers    FocusArea = "NEW_FRONTIERS"
	AreaStewardship     FocusArea = "STEWARDSHIP"
	AreaPurposePlatform FocusArea = "PURPOSE_PLATFORM"
)

const (
	ActivityPending    ActivityStatus = "PENDING"
	ActivityInProgress ActivityStatus = "IN_PROGRESS"
	ActivityDone       ActivityStatus = "DONE"
	ActivityBlocked    ActivityStatus = "BLOCKED"
)

const (
	ProgressOnTrack   ProgressStatus = "ON_TRACK"
	ProgressAttention ProgressStatus = "ATTENTION"
	ProgressAtRisk    ProgressStatus = "AT_RISK"
)

type (
	DealStage          string
	VentureStage       string
	StudioStage        string
	ClientStatus       string
	ComplianceCategory string
	ComplianceStatus   string
	FocusArea          string
	ActivityStatus     string
	ProgressStatus     string
	Weekday            string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Deal struct {
		ID            int64
		Client        string
		Opportunity   string
		Value         Money
		Stage         DealStage
		ExpectedClose Date
		OwnerID       int64
		Notes         string
	}

	Venture struct {
		ID            int64
		Name          string
		Description   string
		Stage         VentureStage
		DaysInStage   int
		TargetDate    Date // optional; zero when unset
		NextMilestone string
		OwnerID       int64
	}

	StudioProject struct {
		ID          int64
		Project     string
		Client      string
		HoursBudget int64
		HoursUsed   int64
		Rate        Money
		Stage       StudioStage
		DueDate     Date
		OwnerID     int64
	}

	Client struct {
		ID             int64
		Name           string
		Contact        string
		Status         ClientStatus
		ActiveProjects int
		YTDRevenue     Money
		LastContact    Date
		OwnerID        int64
	}

	FinanceSnapshot struct {
		Period           string
		YTDRevenue       Money
		AnnualTarget     Money
		CashReserves     Money
		CashTarget       Money
		TaxOutstanding   Money
		TaxMonthlyPaid   Money
		TaxMonthlyTarget Money
	}

	ComplianceItem struct {
		ID        int64
		Item      string
		Category  ComplianceCategory
		Frequency string
		DueDate   Date
		Status    ComplianceStatus
		OwnerID   int64
	}

	WeeklyActivity struct {
		ID           int64
		Description  string
		FocusArea    FocusArea
		DueDay       Weekday
		Status       ActivityStatus
		OwnerID      int64
		Dependencies []int64
		OutcomeNotes string
	}

	TeamMember struct {
		ID       int64
		Name     string
		Role     string
		Initials string
		Color    string
		Mood     string
		MoodText string
	}

	AnnualGoal struct {
		ID      int64
		Title   string
		Metric  string
		Area    FocusArea
		OwnerID int64
	}

	MustConquer struct {
		ID           int64
		Title        string
		LinkedGoalID int64 // 0 when not linked
		RalliedIDs   []int64
	}

	Win struct {
		ID         int64
		AuthorID   int64
		Content    string
		CreatedAt  Date
		ClapperIDs []int64
	}

	TopOfMind struct {
		MemberID    int64
		Content     string
		LastUpdated Date
	}
)

var (
	ErrInvalidStage      = errors.New("invalid stage")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidFocusArea  = errors.New("invalid focus area")
	ErrNegativeAmount    = errors.New("negative amount")
	ErrNegativeDays      = errors.New("negative days in stage")
	ErrEmptyName         = errors.New("empty name")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// DealStages lists the pipeline stages in board order.
var DealStages = []DealStage{
	StageLead, StageDiscovery, StageProposal, StageNegotiation,
	StageContracting, StageWon, StageLost,
}

var VentureStages = []VentureStage{
	VentureIdeaDump, VentureConcept, VentureDiscovery, VentureMVPBuild,
	VenturePilot, VentureLive, VentureScaling,
}

var StudioStages = []StudioStage{
	StudioScoping, StudioContracted, StudioInProgress, StudioReview,
	StudioComplete, StudioClosed,
}

var ClientStatuses = []ClientStatus{
	ClientFirm, ClientAttention, ClientAtRisk, ClientDormant,
}

var ComplianceCategories = []ComplianceCategory{
	ComplianceLegal, ComplianceFinance, ComplianceHR, ComplianceTax, ComplianceOther,
}

// ComplianceStatuses is ordered by urgency; list views sort by this rank.
var ComplianceStatuses = []ComplianceStatus{
	StatusOverdue, StatusPending, StatusDone,
}

var FocusAreas = []FocusArea{
	AreaCommunityGrowth, AreaImpactDelivery, AreaNewFrontiers,
	AreaStewardship, AreaPurposePlatform,
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date is unset.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (s DealStage) Valid() bool {
	switch s {
	case StageLead, StageDiscovery, StageProposal, StageNegotiation,
		StageContracting, StageWon, StageLost:
		return true
	}
	return false
}

// Open reports whether the deal is still in play.
func (s DealStage) Open() bool {
	return s.Valid() && s != StageWon && s != StageLost
}

func (s VentureStage) Valid() bool {
	switch s {
	case VentureIdeaDump, VentureConcept, VentureDiscovery, VentureMVPBuild,
		VenturePilot, VentureLive, VentureScaling:
		return true
	}
	return false
}

func (s StudioStage) Valid() bool {
	switch s {
	case StudioScoping, StudioContracted, StudioInProgress, StudioReview,
		StudioComplete, StudioClosed:
		return true
	}
	return false
}

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientFirm, ClientAttention, ClientAtRisk, ClientDormant:
		return true
	}
	return false
}

func (c ComplianceCategory) Valid() bool {
	switch c {
	case ComplianceLegal, ComplianceFinance, ComplianceHR, ComplianceTax, ComplianceOther:
		return true
	}
	return false
}

func (s ComplianceStatus) Valid() bool {
	switch s {
	case StatusDone, StatusPending, StatusOverdue:
		return true
	}
	return false
}

func (a FocusArea) Valid() bool {
	switch a {
	case AreaCommunityGrowth, AreaImpactDelivery, AreaNewFrontiers,
		AreaStewardship, AreaPurposePlatform:
		return true
	}
	return false
}

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityPending, ActivityInProgress, ActivityDone, ActivityBlocked:
		return true
	}
	return false
}

func (d Deal) Validate() error {
	if !d.Stage.Valid() {
		return ErrInvalidStage
	}
	if err := d.Value.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(d.Client) == "" {
		return ErrEmptyName
	}
	return nil
}

func (v Venture) Validate() error {
	if !v.Stage.Valid() {
		return ErrInvalidStage
	}
	if v.DaysInStage < 0 {
		return ErrNegativeDays
	}
	if strings.TrimSpace(v.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p StudioProject) Validate() error {
	if !p.Stage.Valid() {
		return ErrInvalidStage
	}
	if strings.TrimSpace(p.Project) == "" {
		return ErrEmptyName
	}
	// HoursUsed above HoursBudget is a valid, flagged state.
	return nil
}

func (c Client) Validate() error {
	if !c.Status.Valid() {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return c.YTDRevenue.Validate()
}

func (f FinanceSnapshot) Validate() error {
	for _, m := range []Money{
		f.YTDRevenue, f.AnnualTarget, f.CashReserves, f.CashTarget,
		f.TaxOutstanding, f.TaxMonthlyPaid, f.TaxMonthlyTarget,
	} {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (i ComplianceItem) Validate() error {
	if !i.Category.Valid() {
		return ErrInvalidCategory
	}
	if !i.Status.Valid() {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(i.Item) == "" {
		return ErrEmptyName
	}
	return nil
}

func (a WeeklyActivity) Validate() error {
	if !a.FocusArea.Valid() {
		return ErrInvalidFocusArea
	}
	if !a.Status.Valid() {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(a.Description) == "" {
		return ErrEmptyName
	}
	return nil
}
