package core

// Tone is the color category a badge renders with. The presentation
// layer maps tones to its palette; the core only picks the category.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
	ToneMuted   Tone = "muted"
)

// Badge is a display label plus tone for an enum value.
type Badge struct {
	Label string
	Tone  Tone
}

var dealStageBadges = map[DealStage]Badge{
	StageLead:        {Label: "Lead", Tone: ToneInfo},
	StageDiscovery:   {Label: "Discovery", Tone: ToneInfo},
	StageProposal:    {Label: "Proposal", Tone: ToneWarning},
	StageNegotiation: {Label: "Negotiation", Tone: ToneWarning},
	StageContracting: {Label: "Contracting", Tone: ToneWarning},
	StageWon:         {Label: "Won", Tone: ToneSuccess},
	StageLost:        {Label: "Lost", Tone: ToneError},
}

var ventureStageBadges = map[VentureStage]Badge{
	VentureIdeaDump:  {Label: "Idea Dump", Tone: ToneMuted},
	VentureConcept:   {Label: "Concept", Tone: ToneInfo},
	VentureDiscovery: {Label: "Discovery", Tone: ToneInfo},
	VentureMVPBuild:  {Label: "MVP Build", Tone: ToneWarning},
	VenturePilot:     {Label: "Pilot", Tone: ToneWarning},
	VentureLive:      {Label: "Live", Tone: ToneSuccess},
	VentureScaling:   {Label: "Scaling", Tone: ToneSuccess},
}

var studioStageBadges = map[StudioStage]Badge{
	StudioScoping:    {Label: "Scoping", Tone: ToneInfo},
	StudioContracted: {Label: "Contracted", Tone: ToneInfo},
	StudioInProgress: {Label: "In Progress", Tone: ToneWarning},
	StudioReview:     {Label: "Review", Tone: ToneWarning},
	StudioComplete:   {Label: "Complete", Tone: ToneSuccess},
	StudioClosed:     {Label: "Closed", Tone: ToneMuted},
}

var clientStatusBadges = map[ClientStatus]Badge{
	ClientFirm:      {Label: "Firm", Tone: ToneSuccess},
	ClientAttention: {Label: "Attention", Tone: ToneWarning},
	ClientAtRisk:    {Label: "At Risk", Tone: ToneError},
	ClientDormant:   {Label: "Dormant", Tone: ToneMuted},
}

var complianceStatusBadges = map[ComplianceStatus]Badge{
	StatusDone:    {Label: "Done", Tone: ToneSuccess},
	StatusPending: {Label: "Pending", Tone: ToneWarning},
	StatusOverdue: {Label: "Overdue", Tone: ToneError},
}

var activityStatusBadges = map[ActivityStatus]Badge{
	ActivityPending:    {Label: "Pending", Tone: ToneMuted},
	ActivityInProgress: {Label: "In Progress", Tone: ToneInfo},
	ActivityDone:       {Label: "Done", Tone: ToneSuccess},
	ActivityBlocked:    {Label: "Blocked", Tone: ToneError},
}

var progressStatusBadges = map[ProgressStatus]Badge{
	ProgressOnTrack:   {Label: "On Track", Tone: ToneSuccess},
	ProgressAttention: {Label: "Attention", Tone: ToneWarning},
	ProgressAtRisk:    {Label: "At Risk", Tone: ToneError},
}

var focusAreaLabels = map[FocusArea]string{
	AreaCommunityGrowth: "Community Growth",
	AreaImpactDelivery:  "Impact Delivery",
	AreaNewFrontiers:    "New Frontiers",
	AreaStewardship:     "Stewardship",
	AreaPurposePlatform: "Purpose & Platform",
}

// unknownBadge is the degraded rendering for values outside the fixed
// tables, so a bad enum never panics a view.
func unknownBadge(v string) Badge {
	return Badge{Label: v, Tone: ToneMuted}
}

func (s DealStage) Badge() Badge {
	if b, ok := dealStageBadges[s]; ok {
		return b
	}
	return unknownBadge(string(s))
}

func (s VentureStage) Badge() Badge {
	if b, ok := ventureStageBadges[s]; ok {
		return b
	}
	return unknownBadge(string(s))
}

func (s StudioStage) Badge() Badge {
	if b, ok := studioStageBadges[s]; ok {
		return b
	}
	return unknownBadge(string(s))
}

func (s ClientStatus) Badge() Badge {
	if b, ok := clientStatusBadges[s]; ok {
		return b
	}
	return unknownBadge(string(s))
}

func (s ComplianceStatus) Badge() Badge {
	if b, ok := complianceStatusBadges[s]; ok {
		return b
	}
	return unknownBadge(string(s))
}

func (s ActivityStatus) Badge() Badge {
	if b, ok := activityStatusBadges[s]; ok {
		return b
	}
	return unknownBadge(string(s))
}

func (s ProgressStatus) Badge() Badge {
	if b, ok := progressStatusBadges[s]; ok {
		return b
	}
	return unknownBadge(string(s))
}

// Label returns the display name for a focus area.
func (a FocusArea) Label() string {
	if l, ok := focusAreaLabels[a]; ok {
		return l
	}
	return string(a)
}
