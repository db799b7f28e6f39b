package memory

import (
	"time"

	"github.com/hirelane/ats/internal/core/domain"
)

const day = 24 * time.Hour

// DemoDataset returns the sample tenants, staff and pipeline the service
// starts with when SEED_DEMO is enabled. Passwords are plaintext.
//
// Users and clients are both chat principals, so their ids must not
// overlap; client ids carry a "c" prefix.
func DemoDataset(now time.Time) domain.Dataset {
	now = now.UTC()
	return domain.Dataset{
		Users: []domain.User{
			{
				ID:        "1",
				Username:  "superadmin",
				Password:  "admin123",
				Role:      domain.RoleSuperAdmin,
				Name:      "Super Admin",
				Email:     "superadmin@ats.com",
				CreatedAt: now,
				Active:    true,
			},
			{
				ID:              "2",
				Username:        "john.admin",
				Password:        "admin123",
				Role:            domain.RoleUserAdmin,
				Name:            "John Doe",
				Email:           "john@ats.com",
				CreatedAt:       now,
				Active:          true,
				AssignedClients: []string{"c1", "c2"},
			},
		},
		Clients: []domain.Client{
			{
				ID:            "c1",
				Name:          "Tech Corp Inc",
				Email:         "hr@techcorp.com",
				ContactPerson: "Sarah Johnson",
				Phone:         "+1-555-0101",
				Username:      "techcorp",
				Password:      "client123",
				OnboardedAt:   now,
				Active:        true,
			},
			{
				ID:            "c2",
				Name:          "Digital Solutions Ltd",
				Email:         "contact@digitalsol.com",
				ContactPerson: "Mike Smith",
				Phone:         "+1-555-0102",
				Username:      "digitalsol",
				Password:      "client123",
				OnboardedAt:   now,
				Active:        true,
			},
		},
		Positions: []domain.Position{
			{
				ID:          "1",
				ClientID:    "c1",
				Title:       "Senior Software Engineer",
				Description: "Looking for an experienced software engineer with 5+ years in React and Node.js",
				Status:      domain.PositionOpen,
				CreatedAt:   now,
				CreatedBy:   "1",
			},
			{
				ID:          "2",
				ClientID:    "c1",
				Title:       "Product Manager",
				Description: "Seeking a product manager with strong leadership skills",
				Status:      domain.PositionOpen,
				CreatedAt:   now,
				CreatedBy:   "1",
			},
			{
				ID:          "3",
				ClientID:    "c2",
				Title:       "UI/UX Designer",
				Description: "Creative designer needed with expertise in Figma and user research",
				Status:      domain.PositionClosed,
				CreatedAt:   now,
				CreatedBy:   "2",
			},
		},
		Candidates: []domain.Candidate{
			{
				ID:         "1",
				Name:       "Alice Williams",
				Email:      "alice@example.com",
				Phone:      "+1-555-0201",
				PositionID: "1",
				Status:     domain.CandidatePending,
				Resume:     "resume-alice.pdf",
				UploadedBy: "2",
				UploadedAt: now,
			},
			{
				ID:             "2",
				Name:           "Bob Anderson",
				Email:          "bob@example.com",
				Phone:          "+1-555-0202",
				PositionID:     "1",
				Status:         domain.CandidateSelected,
				Resume:         "resume-bob.pdf",
				UploadedBy:     "2",
				UploadedAt:     now,
				InterviewNotes: "Excellent technical skills",
			},
			{
				ID:             "3",
				Name:           "Carol Martinez",
				Email:          "carol@example.com",
				Phone:          "+1-555-0203",
				PositionID:     "2",
				Status:         domain.CandidateRejected,
				Resume:         "resume-carol.pdf",
				UploadedBy:     "2",
				UploadedAt:     now,
				InterviewNotes: "Not enough experience",
			},
		},
		Invoices: []domain.Invoice{
			{
				ID:          "1",
				ClientID:    "c1",
				Amount:      15000,
				Description: "Recruitment services for 3 positions",
				ProjectName: "Q4 2024 Hiring",
				GeneratedAt: now,
				Status:      domain.InvoicePending,
				DueDate:     now.Add(30 * day),
			},
			{
				ID:          "2",
				ClientID:    "c2",
				Amount:      8000,
				Description: "UI/UX Designer placement",
				ProjectName: "Designer Recruitment",
				GeneratedAt: now,
				Status:      domain.InvoicePaid,
				DueDate:     now.Add(-10 * day),
			},
		},
		ChatMessages: []domain.ChatMessage{
			{
				ID:         "1",
				SenderID:   "2",
				ReceiverID: "c1",
				Message:    "Hi, I have some questions about the Senior Engineer position",
				Timestamp:  now.Add(-2 * time.Hour),
			},
			{
				ID:         "2",
				SenderID:   "c1",
				ReceiverID: "2",
				Message:    "Sure, how can I help?",
				Timestamp:  now.Add(-1 * time.Hour),
			},
		},
	}
}
