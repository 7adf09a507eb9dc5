package main

import (
	"os"

	"github.com/geeked101/bus-book/internal/config"
	"github.com/geeked101/bus-book/internal/database"
	"github.com/geeked101/bus-book/internal/models"
	"github.com/sirupsen/logrus"
)

// sampleBuses is the initial catalog. Seeding skips when the catalog is
// already populated unless FORCE_SEED is set.
var sampleBuses = []models.Bus{
	{
		BusNumber:  "Easy Coach - KCH 123A",
		BusType:    "Standard",
		TotalSeats: 44,
		Route: models.Route{
			From: "Nairobi", To: "Kisumu",
			DepartureTime: "08:15 AM", ArrivalTime: "04:30 PM",
			Price: 1450.0,
		},
	},
	{
		BusNumber:  "Mash East Africa - KDA 456B",
		BusType:    "VIP Oxygen",
		TotalSeats: 36,
		Route: models.Route{
			From: "Nairobi", To: "Mombasa",
			DepartureTime: "10:00 PM", ArrivalTime: "06:00 AM",
			Price: 2200.0,
		},
	},
	{
		BusNumber:  "Tahmeed - KDB 789C",
		BusType:    "Luxury Coach",
		TotalSeats: 32,
		Route: models.Route{
			From: "Mombasa", To: "Nairobi",
			DepartureTime: "09:00 AM", ArrivalTime: "05:00 PM",
			Price: 1600.0,
		},
	},
	{
		BusNumber:  "Dreamline - KDC 012D",
		BusType:    "Executive",
		TotalSeats: 40,
		Route: models.Route{
			From: "Nairobi", To: "Eldoret",
			DepartureTime: "07:30 AM", ArrivalTime: "01:30 PM",
			Price: 1300.0,
		},
	},
	{
		BusNumber:  "Guardian Angel - KDD 345E",
		BusType:    "Standard",
		TotalSeats: 52,
		Route: models.Route{
			From: "Nairobi", To: "Busia",
			DepartureTime: "09:00 PM", ArrivalTime: "05:00 AM",
			Price: 1500.0,
		},
	},
	{
		BusNumber:  "Modern Coast - KDE 678F",
		BusType:    "VIP",
		TotalSeats: 28,
		Route: models.Route{
			From: "Nairobi", To: "Mombasa",
			DepartureTime: "08:00 AM", ArrivalTime: "04:30 PM",
			Price: 2500.0,
		},
	},
	{
		BusNumber:  "Super Metro - KDF 901G",
		BusType:    "Semi-Luxury",
		TotalSeats: 48,
		Route: models.Route{
			From: "Nairobi", To: "Nakuru",
			DepartureTime: "06:00 AM", ArrivalTime: "09:00 AM",
			Price: 800.0,
		},
	},
	{
		BusNumber:  "Transline Galaxy - KDG 234H",
		BusType:    "Standard",
		TotalSeats: 14,
		Route: models.Route{
			From: "Nairobi", To: "Kisii",
			DepartureTime: "10:00 AM", ArrivalTime: "04:00 PM",
			Price: 1200.0,
		},
	},
	{
		BusNumber:  "Spanish - KDH 567I",
		BusType:    "Standard Coach",
		TotalSeats: 52,
		Route: models.Route{
			From: "Nairobi", To: "Kakamega",
			DepartureTime: "08:30 PM", ArrivalTime: "04:30 AM",
			Price: 1400.0,
		},
	},
	{
		BusNumber:  "Mash East Africa - KDI 890J",
		BusType:    "Standard",
		TotalSeats: 52,
		Route: models.Route{
			From: "Nairobi", To: "Malindi",
			DepartureTime: "07:00 PM", ArrivalTime: "05:00 AM",
			Price: 1800.0,
		},
	},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatalf("Failed to apply database schema: %v", err)
	}

	busRepository := database.NewBusRepository(db)

	count, err := busRepository.Count()
	if err != nil {
		logger.Fatalf("Failed to count buses: %v", err)
	}

	if count > 0 && !cfg.Seed.Force {
		logger.Infof("Bus catalog already has %d buses, skipping seed (set FORCE_SEED=true to override)", count)
		return
	}

	if count > 0 {
		logger.Warnf("FORCE_SEED set, clearing %d existing buses", count)
		if err := busRepository.DeleteAll(); err != nil {
			logger.Fatalf("Failed to clear buses: %v", err)
		}
	}

	for i := range sampleBuses {
		bus := sampleBuses[i]
		if err := busRepository.Create(&bus); err != nil {
			logger.Fatalf("Failed to seed bus %s: %v", bus.BusNumber, err)
		}
		logger.WithFields(logrus.Fields{
			"bus_id":     bus.ID,
			"bus_number": bus.BusNumber,
			"route":      bus.Route.From + " -> " + bus.Route.To,
		}).Info("Seeded bus")
	}

	logger.Infof("Seeding complete with %d buses", len(sampleBuses))
}
