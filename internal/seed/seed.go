// Package seed holds the demo dataset loaded into an empty store.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
)

// Users returns the demo accounts: one per role plus a second department.
func Users() []models.User {
	return []models.User{
		{ID: "U001", Name: "Anita Rao", Email: "indenter@university.edu", Role: models.RoleIndenter, Department: "Biology"},
		{ID: "U002", Name: "Dr. Ravi Kumar", Email: "hod@university.edu", Role: models.RoleHOD, Department: "Biology"},
		{ID: "U003", Name: "Suresh Patel", Email: "store@university.edu", Role: models.RoleStore},
		{ID: "U004", Name: "Meena Iyer", Email: "registrar@university.edu", Role: models.RoleRegistrar},
		{ID: "U005", Name: "Vikram Singh", Email: "cpd@university.edu", Role: models.RoleCPD},
		{ID: "U006", Name: "Dr. Lakshmi Nair", Email: "management@university.edu", Role: models.RoleManagement},
		{ID: "U007", Name: "Rahul Mehta", Email: "vendor@labtech.example", Role: models.RoleVendor, VendorID: "V001"},
		{ID: "U008", Name: "System Admin", Email: "admin@university.edu", Role: models.RoleAdmin},
		{ID: "U009", Name: "Kavya Shah", Email: "chem.indenter@university.edu", Role: models.RoleIndenter, Department: "Chemistry"},
		{ID: "U010", Name: "Dr. Arjun Das", Email: "chem.hod@university.edu", Role: models.RoleHOD, Department: "Chemistry"},
		{ID: "U011", Name: "Pooja Verma", Email: "sales@campusfurniture.example", Role: models.RoleVendor, VendorID: "V004"},
	}
}

// Vendors returns the demo vendor directory.
func Vendors() []models.Vendor {
	return []models.Vendor{
		{ID: "V001", Name: "LabTech Supplies", Category: "Lab Equipment", ContactPerson: "Rahul Mehta", Email: "vendor@labtech.example", Phone: "+91 98200 11111", Location: "Mumbai", Rating: 4.5, TotalOrders: 42, CompletedOrders: 40},
		{ID: "V002", Name: "Scientific Instruments Co.", Category: "Lab Equipment", ContactPerson: "Neha Joshi", Email: "quotes@sci-instruments.example", Phone: "+91 98200 22222", Location: "Pune", Rating: 4.2, TotalOrders: 31, CompletedOrders: 29},
		{ID: "V003", Name: "OfficeMart", Category: "Stationery", ContactPerson: "Imran Khan", Email: "orders@officemart.example", Phone: "+91 98200 33333", Location: "Bengaluru", Rating: 3.9, TotalOrders: 88, CompletedOrders: 85},
		{ID: "V004", Name: "Campus Furniture Works", Category: "Furniture", ContactPerson: "Pooja Verma", Email: "sales@campusfurniture.example", Phone: "+91 98200 44444", Location: "Chennai", Rating: 4.7, TotalOrders: 19, CompletedOrders: 19},
		{ID: "V005", Name: "ComputeHub", Category: "IT Equipment", ContactPerson: "Aditya Rao", Email: "b2b@computehub.example", Phone: "+91 98200 55555", Location: "Hyderabad", Rating: 4.1, TotalOrders: 56, CompletedOrders: 51},
	}
}

// Dataset returns indents, vendors, enquiries and quotes with dates relative to now.
func Dataset(now time.Time) repository.Dataset {
	day := 24 * time.Hour
	at := func(daysAgo int) time.Time { return now.Add(-time.Duration(daysAgo) * day).Truncate(time.Second) }

	indents := []models.Indent{
		{
			ID: "IND001", Title: "Compound Microscope", Department: "Biology", Quantity: 2,
			Amount: decimal.NewFromInt(85000), Priority: models.PriorityHigh, Status: models.StatusPendingHOD,
			RequestedBy: "U001", BudgetHead: "Lab Equipment", Justification: "Replacement for the undergraduate teaching lab.",
			Items: []models.IndentItem{{
				Name: "Compound Microscope", Make: "Olympus", Quantity: 2, UnitOfMeasure: "Nos",
				Description: "Binocular head, 4x/10x/40x/100x objectives, LED illumination", ApproximateValue: decimal.NewFromInt(42500),
				Purpose: "Practical classes", StockOnHand: 0,
			}},
			CreatedAt: at(2), UpdatedAt: at(2),
		},
		{
			ID: "IND002", Title: "Fume Hood", Department: "Chemistry", Quantity: 1,
			Amount: decimal.NewFromInt(240000), Priority: models.PriorityMedium, Status: models.StatusPendingStore,
			RequestedBy: "U009", BudgetHead: "Infrastructure", Justification: "Second fume hood for the organic chemistry lab.",
			ApprovalTrail: []models.Role{models.RoleHOD},
			CreatedAt:     at(6), UpdatedAt: at(4),
		},
		{
			ID: "IND003", Title: "Digital Oscilloscope", Department: "Physics", Quantity: 4,
			Amount: decimal.NewFromInt(160000), Priority: models.PriorityMedium, Status: models.StatusPendingRegistrar,
			RequestedBy: "U001", BudgetHead: "Lab Equipment", Justification: "Electronics lab expansion.",
			ApprovalTrail: []models.Role{models.RoleHOD, models.RoleStore},
			CreatedAt:     at(9), UpdatedAt: at(5),
		},
		{
			ID: "IND004", Title: "Laptops for Research Scholars", Department: "Computer Science", Quantity: 10,
			Amount: decimal.NewFromInt(650000), Priority: models.PriorityHigh, Status: models.StatusPendingCPD,
			RequestedBy: "U001", BudgetHead: "IT", Justification: "Laptops for the new research cohort.",
			Items: []models.IndentItem{{
				Name: "Laptop", Make: "Any reputed brand", Quantity: 10, UnitOfMeasure: "Nos",
				Description: "16 GB RAM, 512 GB SSD, 14 inch display, 3 year warranty", ApproximateValue: decimal.NewFromInt(65000),
			}},
			ApprovalTrail: []models.Role{models.RoleHOD, models.RoleStore, models.RoleRegistrar},
			CreatedAt:     at(12), UpdatedAt: at(3),
		},
		{
			ID: "IND005", Title: "Refrigerated Centrifuge", Department: "Biology", Quantity: 1,
			Amount: decimal.NewFromInt(320000), Priority: models.PriorityLow, Status: models.StatusPendingManagement,
			RequestedBy: "U001", BudgetHead: "Research Grant", Justification: "Required for the protein purification project.",
			ApprovalTrail: []models.Role{models.RoleHOD, models.RoleStore, models.RoleRegistrar, models.RoleCPD},
			CreatedAt:     at(15), UpdatedAt: at(1),
		},
		{
			ID: "IND006", Title: "Reading Room Chairs", Department: "Library", Quantity: 10,
			Amount: decimal.NewFromInt(30000), Priority: models.PriorityLow, Status: models.StatusApproved,
			RequestedBy: "U001", BudgetHead: "Furniture", Justification: "Replacement of damaged chairs.",
			ApprovalTrail: []models.Role{models.RoleHOD, models.RoleStore, models.RoleRegistrar, models.RoleCPD, models.RoleManagement},
			CreatedAt:     at(20), UpdatedAt: at(8),
		},
		{
			ID: "IND007", Title: "Volumetric Glassware Set", Department: "Chemistry", Quantity: 5,
			Amount: decimal.NewFromInt(18000), Priority: models.PriorityMedium, Status: models.StatusDraft,
			RequestedBy: "U009", BudgetHead: "Consumables", Justification: "Annual glassware replenishment.",
			CreatedAt: at(1), UpdatedAt: at(1),
		},
		{
			ID: "IND008", Title: "Ceiling Projector", Department: "Mathematics", Quantity: 1,
			Amount: decimal.NewFromInt(55000), Priority: models.PriorityLow, Status: models.StatusRejected,
			RequestedBy: "U001", BudgetHead: "IT", Justification: "Seminar hall projector.",
			ApprovalTrail: []models.Role{models.RoleHOD},
			Remarks:       "Existing projector can be repaired under AMC.",
			CreatedAt:     at(25), UpdatedAt: at(22),
		},
	}

	enquiries := []models.Enquiry{
		{
			ID: "ENQ001", IndentID: "IND006", Title: "Reading Room Chairs", Department: "Library", Quantity: 10,
			Specification: indents[5].Specification(), VendorCategory: "Furniture", VendorIDs: []string{"V004"},
			DeliveryTimeline: "Within 3 weeks", Deadline: now.Add(5 * day).Truncate(time.Second),
			Status: models.EnquiryResponded, SentBy: "U005", CreatedAt: at(7),
		},
		{
			ID: "ENQ002", IndentID: "IND004", Title: "Laptops for Research Scholars", Department: "Computer Science", Quantity: 10,
			Specification: indents[3].Specification(), VendorCategory: "IT Equipment", VendorIDs: []string{"V005"},
			DeliveryTimeline: "Within 2 weeks", Deadline: now.Add(7 * day).Truncate(time.Second),
			Status: models.EnquiryPending, SentBy: "U005", CreatedAt: at(2),
		},
		{
			ID: "ENQ003", IndentID: "IND004", Title: "Laptops for Research Scholars", Department: "Computer Science", Quantity: 10,
			Specification: indents[3].Specification(), VendorCategory: "Lab Equipment", VendorIDs: []string{"V001", "V002"},
			DeliveryTimeline: "Within 2 weeks", Deadline: now.Add(10 * day).Truncate(time.Second),
			Status: models.EnquiryPending, SentBy: "U005", CreatedAt: at(1),
		},
	}

	quotes := []models.Quote{
		{
			ID: "Q001", EnquiryID: "ENQ001", IndentID: "IND006", VendorID: "V004",
			OriginalPrice: decimal.NewFromInt(28000), DiscountedPrice: decimal.NewFromInt(25000),
			DeliveryTime: "15 days", Warranty: "1 year", Terms: "50% advance, balance on delivery",
			ValidFrom: at(6), ValidUntil: now.Add(30 * day).Truncate(time.Second), SubmittedDate: at(6),
		},
	}

	return repository.Dataset{
		Indents:   indents,
		Vendors:   Vendors(),
		Enquiries: enquiries,
		Quotes:    quotes,
	}
}
