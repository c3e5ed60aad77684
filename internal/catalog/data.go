package catalog

import "github.com/ovisslabs/oviss-backend/pkg/models"

// ShopName is the display name used in notification copy.
const ShopName = "Oviss Salon"

var defaultServices = []models.Service{
	{ID: "1", Name: "Premium Haircut", PriceInfo: "From RM45"},
	{ID: "2", Name: "Perm", PriceInfo: "From RM180"},
	{ID: "3", Name: "Color", PriceInfo: "From RM120"},
	{ID: "4", Name: "Scalp & Treatment", PriceInfo: "From RM150"},
	{ID: "5", Name: "Rebonding", PriceInfo: "From RM200"},
	{ID: "6", Name: "Wash & Styling", PriceInfo: "From RM35"},
}

var defaultStylists = []models.Stylist{
	{
		ID:       "s1",
		Name:     "Jonathan",
		Title:    "Creative Director",
		Bio:      "With over 15 years of experience, Jonathan specializes in avant-garde cuts and structural styling.",
		ImageRef: "https://picsum.photos/seed/jonathan/400/400",
		Rank:     1,
	},
	{
		ID:       "s2",
		Name:     "Fiona",
		Title:    "Executive Stylist",
		Bio:      "Fiona is a master of hair coloring and balayage techniques, bringing vibrant life to every client.",
		ImageRef: "https://picsum.photos/seed/fiona/400/400",
		Rank:     2,
	},
	{
		ID:       "s3",
		Name:     "TuTu",
		Title:    "Senior Stylist",
		Bio:      "TuTu focuses on scalp health and organic treatments, ensuring style meets hair wellness.",
		ImageRef: "https://picsum.photos/seed/tutu/400/400",
		Rank:     3,
	},
}

var defaultOutlets = []models.Outlet{
	{
		ID:       "o1",
		Name:     "Oviss Salon – Puchong",
		Address:  "123 Jalan Puchong, 45000 Selangor",
		Contact:  "012-3456789",
		ImageRef: "https://picsum.photos/seed/puchong/800/450",
	},
	{
		ID:       "o2",
		Name:     "Oviss Salon – Melaka",
		Address:  "99 Jalan Hang Tuan, 75000 Melaka",
		Contact:  "019-6543210",
		ImageRef: "https://picsum.photos/seed/melaka/800/450",
	},
}

var defaultTimeSlots = []string{
	"10:00 AM", "11:00 AM", "12:00 PM", "01:00 PM", "02:00 PM",
	"03:00 PM", "04:00 PM", "05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
}
