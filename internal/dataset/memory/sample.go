package memory

import "opsboard/internal/core"

// Sample returns the bundled demo dataset. It is the backend of last
// resort: deployments without a sheet or database still get a working
// board.
func Sample() core.Snapshot {
	return core.Snapshot{
		Team: []core.TeamMember{
			{ID: 1, Name: "Zweli Ntshona", Role: "Managing Director", Initials: "ZN", Color: "#4A3425", Mood: "focused", MoodText: "Heads down on the IFC proposal"},
			{ID: 2, Name: "Albert", Role: "Ventures Lead", Initials: "AL", Color: "#5C7A99", Mood: "energised", MoodText: "MVP demo went well"},
			{ID: 3, Name: "Brian Dube", Role: "Studio Lead", Initials: "BD", Color: "#4A7C59", Mood: "steady", MoodText: "Clearing the AGRA backlog"},
			{ID: 4, Name: "Lindiwe", Role: "Operations", Initials: "LK", Color: "#D4858D", Mood: "stretched", MoodText: "Month-end close week"},
		},
		Goals: []core.AnnualGoal{
			{ID: 1, Title: "Land two anchor clients", Metric: "2 signed retainers", Area: core.AreaCommunityGrowth, OwnerID: 1},
			{ID: 2, Title: "Take one venture live", Metric: "1 venture in LIVE", Area: core.AreaNewFrontiers, OwnerID: 2},
			{ID: 3, Title: "Build a 3-month cash buffer", Metric: "R500K reserves", Area: core.AreaStewardship, OwnerID: 4},
		},
		Deals: []core.Deal{
			{ID: 1, Client: "Nedbank", Opportunity: "Enterprise development programme", Value: core.Rands(320_000), Stage: core.StageLead, ExpectedClose: core.NewDate(2026, 4, 30), OwnerID: 1},
			{ID: 2, Client: "Standard Bank", Opportunity: "SME incubation pilot", Value: core.Rands(180_000), Stage: core.StageLead, ExpectedClose: core.NewDate(2026, 5, 15), OwnerID: 1},
			{ID: 3, Client: "IBM", Opportunity: "Skills accelerator content", Value: core.Rands(400_000), Stage: core.StageDiscovery, ExpectedClose: core.NewDate(2026, 3, 31), OwnerID: 1},
			{ID: 4, Client: "IFC", Opportunity: "Agri value-chain study", Value: core.Rands(850_000), Stage: core.StageProposal, ExpectedClose: core.NewDate(2026, 3, 15), OwnerID: 1, Notes: "Proposal submitted, awaiting panel review"},
			{ID: 5, Client: "AGRA", Opportunity: "Food corridors phase 2", Value: core.Rands(620_000), Stage: core.StageProposal, ExpectedClose: core.NewDate(2026, 2, 28), OwnerID: 3},
			{ID: 6, Client: "Vodacom", Opportunity: "Rural connectivity research", Value: core.Rands(400_000), Stage: core.StageNegotiation, ExpectedClose: core.NewDate(2026, 2, 15), OwnerID: 1},
			{ID: 7, Client: "Gates Foundation", Opportunity: "R&D grant", Value: core.Rands(1_200_000), Stage: core.StageWon, ExpectedClose: core.NewDate(2026, 1, 10), OwnerID: 1},
		},
		Ventures: []core.Venture{
			{ID: 1, Name: "Briansfomo", Description: "Community commerce app", Stage: core.VentureMVPBuild, DaysInStage: 23, TargetDate: core.NewDate(2026, 3, 31), NextMilestone: "Closed beta with 50 users", OwnerID: 2},
			{ID: 2, Name: "Mntase Communities", Description: "Stokvel management platform", Stage: core.VentureDiscovery, DaysInStage: 45, NextMilestone: "Pick a pilot stokvel", OwnerID: 2},
		},
		Projects: []core.StudioProject{
			{ID: 1, Project: "Gates R&D", Client: "Gates Foundation", HoursBudget: 160, HoursUsed: 142, Rate: core.Rands(1_200), Stage: core.StudioInProgress, DueDate: core.NewDate(2026, 3, 31), OwnerID: 3},
			{ID: 2, Project: "AGRA Food Corridors", Client: "AGRA", HoursBudget: 120, HoursUsed: 68, Rate: core.Rands(1_100), Stage: core.StudioInProgress, DueDate: core.NewDate(2026, 4, 15), OwnerID: 3},
			{ID: 3, Project: "VUT Procurement", Client: "VUT", HoursBudget: 40, HoursUsed: 52, Rate: core.Rands(950), Stage: core.StudioReview, DueDate: core.NewDate(2026, 1, 31), OwnerID: 3},
		},
		Clients: []core.Client{
			{ID: 1, Name: "Gates Foundation", Contact: "M. Okafor", Status: core.ClientFirm, ActiveProjects: 1, YTDRevenue: core.Rands(1_200_000), LastContact: core.NewDate(2026, 1, 28), OwnerID: 1},
			{ID: 2, Name: "AGRA", Contact: "T. Mensah", Status: core.ClientFirm, ActiveProjects: 1, YTDRevenue: core.Rands(420_000), LastContact: core.NewDate(2026, 1, 22), OwnerID: 3},
			{ID: 3, Name: "VUT", Contact: "Prof. Dlamini", Status: core.ClientAttention, ActiveProjects: 1, YTDRevenue: core.Rands(130_000), LastContact: core.NewDate(2026, 1, 5), OwnerID: 3},
			{ID: 4, Name: "IBM", Contact: "S. Naidoo", Status: core.ClientAtRisk, ActiveProjects: 0, YTDRevenue: core.Rands(50_000), LastContact: core.NewDate(2025, 12, 2), OwnerID: 1},
		},
		Finance: core.FinanceSnapshot{
			Period:           "2026-01",
			YTDRevenue:       core.Rands(1_800_000),
			AnnualTarget:     core.Rands(10_000_000),
			CashReserves:     core.Rands(412_000),
			CashTarget:       core.Rands(500_000),
			TaxOutstanding:   core.Rands(237_000),
			TaxMonthlyPaid:   core.Rands(50_000),
			TaxMonthlyTarget: core.Rands(50_000),
		},
		Compliance: []core.ComplianceItem{
			{ID: 1, Item: "VAT201 return", Category: core.ComplianceTax, Frequency: "Monthly", DueDate: core.NewDate(2026, 1, 25), Status: core.StatusOverdue, OwnerID: 4},
			{ID: 2, Item: "EMP201 PAYE", Category: core.ComplianceTax, Frequency: "Monthly", DueDate: core.NewDate(2026, 2, 7), Status: core.StatusPending, OwnerID: 4},
			{ID: 3, Item: "CIPC annual return", Category: core.ComplianceLegal, Frequency: "Annual", DueDate: core.NewDate(2026, 3, 1), Status: core.StatusPending, OwnerID: 4},
			{ID: 4, Item: "B-BBEE affidavit renewal", Category: core.ComplianceLegal, Frequency: "Annual", DueDate: core.NewDate(2026, 6, 30), Status: core.StatusPending, OwnerID: 1},
			{ID: 5, Item: "Employment contracts review", Category: core.ComplianceHR, Frequency: "Annual", DueDate: core.NewDate(2026, 2, 28), Status: core.StatusPending, OwnerID: 4},
			{ID: 6, Item: "Management accounts", Category: core.ComplianceFinance, Frequency: "Monthly", DueDate: core.NewDate(2026, 1, 15), Status: core.StatusDone, OwnerID: 4},
		},
		Activities: []core.WeeklyActivity{
			{ID: 1, Description: "Follow up IFC panel feedback", FocusArea: core.AreaCommunityGrowth, DueDay: "TUESDAY", Status: core.ActivityInProgress, OwnerID: 1},
			{ID: 2, Description: "Ship Briansfomo beta invite flow", FocusArea: core.AreaNewFrontiers, DueDay: "WEDNESDAY", Status: core.ActivityInProgress, OwnerID: 2},
			{ID: 3, Description: "Gates Q1 progress report draft", FocusArea: core.AreaImpactDelivery, DueDay: "THURSDAY", Status: core.ActivityPending, OwnerID: 3, Dependencies: []int64{6}},
			{ID: 4, Description: "File VAT201", FocusArea: core.AreaStewardship, DueDay: "MONDAY", Status: core.ActivityBlocked, OwnerID: 4, OutcomeNotes: "Waiting on eFiling profile reset"},
			{ID: 5, Description: "Publish venture-building article", FocusArea: core.AreaPurposePlatform, DueDay: "FRIDAY", Status: core.ActivityPending, OwnerID: 2},
			{ID: 6, Description: "Reconcile January project hours", FocusArea: core.AreaStewardship, DueDay: "MONDAY", Status: core.ActivityDone, OwnerID: 4},
		},
		MustConquer: []core.MustConquer{
			{ID: 1, Title: "Close the Vodacom negotiation", LinkedGoalID: 1, RalliedIDs: []int64{2, 3}},
			{ID: 2, Title: "Get Briansfomo into real hands", LinkedGoalID: 2, RalliedIDs: []int64{1}},
			{ID: 3, Title: "Kill the VAT backlog for good", RalliedIDs: []int64{1, 2, 3}},
		},
		Wins: []core.Win{
			{ID: 1, AuthorID: 1, Content: "Gates grant landed. R1.2M for the R&D programme.", CreatedAt: core.NewDate(2026, 1, 10), ClapperIDs: []int64{2, 3, 4}},
			{ID: 2, AuthorID: 3, Content: "AGRA signed off the corridor mapping deliverable first pass.", CreatedAt: core.NewDate(2026, 1, 24), ClapperIDs: []int64{1, 4}},
		},
		TopOfMind: []core.TopOfMind{
			{MemberID: 1, Content: "IFC decision lands this month", LastUpdated: core.NewDate(2026, 1, 27)},
			{MemberID: 2, Content: "Beta retention numbers", LastUpdated: core.NewDate(2026, 1, 29)},
			{MemberID: 4, Content: "Cash buffer is R88K short", LastUpdated: core.NewDate(2026, 1, 30)},
		},
	}
}
