package search

import "github.com/mchavarria/wayfinder/pkg/models"

// Fixture providers. Each returns canned options for its category; real
// provider integrations would replace these behind the same signature.

func flightOptions(req models.TripRequest) []models.Option {
	return []models.Option{
		{
			Name:   "Ryanair",
			Detail: "Departs 8:30 AM, arrives 2:15 PM (1h 45m)",
			Price:  "$450",
		},
		{
			Name:   "Aer Lingus",
			Detail: "Departs 1:20 PM, arrives 7:05 PM (1h 45m)",
			Price:  "$420",
		},
	}
}

func hotelOptions(req models.TripRequest) []models.Option {
	return []models.Option{
		{
			Name:   "Hotel Catalonia",
			Price:  "$150/night",
			Rating: "4.5/5",
			Tags:   []string{"Pool", "Gym", "WiFi", "Breakfast"},
		},
		{
			Name:   "NH Hotels",
			Price:  "$89/night",
			Rating: "4.2/5",
			Tags:   []string{"WiFi", "Parking", "24h Front Desk"},
		},
	}
}

func eventOptions(req models.TripRequest) []models.Option {
	return []models.Option{
		{
			Name:   "Local Art Festival",
			Detail: "Weekend event",
			Price:  "Free",
			Tags:   []string{"Arts & Culture"},
		},
		{
			Name:   "Food & Wine Tour",
			Detail: "Runs daily",
			Price:  "$75",
			Tags:   []string{"Food & Drink"},
		},
	}
}

func restaurantOptions(req models.TripRequest) []models.Option {
	return []models.Option{
		{
			Name:   "The Local Bistro",
			Detail: "Local/Fusion cuisine",
			Rating: "4.7/5",
			Price:  "$$",
		},
		{
			Name:   "Seaside Grill",
			Detail: "Seafood",
			Rating: "4.5/5",
			Price:  "$$$",
		},
	}
}

func attractionOptions(req models.TripRequest) []models.Option {
	return []models.Option{
		{
			Name:   "Historic City Center",
			Detail: "Medieval architecture and cobblestone streets; 2-3 hours",
			Rating: "4.8/5",
			Price:  "Free",
			Tags:   []string{"Historical Site"},
		},
		{
			Name:   "National Art Museum",
			Detail: "Contemporary and classical art collection; 3-4 hours",
			Rating: "4.6/5",
			Price:  "$15",
			Tags:   []string{"Museum"},
		},
		{
			Name:   "Botanical Gardens",
			Detail: "Rare plants and walking paths; 1-2 hours",
			Rating: "4.5/5",
			Price:  "$10",
			Tags:   []string{"Nature"},
		},
	}
}

func socialOptions(req models.TripRequest) []models.Option {
	return []models.Option{
		{
			Name:   "Central Market Square",
			Detail: "Bustling marketplace where locals gather; best mornings and evenings",
			Tags:   []string{"Public Space", "Shopping", "Local food"},
		},
		{
			Name:   "Community Sports Center",
			Detail: "Sports clubs and fitness classes open to visitors; weekday evenings",
			Tags:   []string{"Recreation", "Group fitness", "Tennis", "Swimming"},
		},
		{
			Name:   "Language Exchange Café",
			Detail: "Language exchanges and board games; Tuesday and Thursday evenings",
			Tags:   []string{"Café", "Language practice", "Cultural exchange"},
		},
		{
			Name:   "Riverside Walking Path",
			Detail: "Scenic path popular with joggers and dog walkers; sunrise and sunset",
			Tags:   []string{"Outdoor", "Walking", "Jogging"},
		},
	}
}
