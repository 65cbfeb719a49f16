// Command seed loads a starter set of Dutch questions into MongoDB so a
// freshly installed server is playable without visiting the admin panel
// first. It is a no-op when the questions collection is not empty.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"deslimste/internal/model"
	"deslimste/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	ctx := context.Background()

	mongoURI := os.Getenv("SLIMSTE_MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
		log.Println("Warning: SLIMSTE_MONGO_URI not set, using default")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer client.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	repo := repository.NewQuestionRepo(client)

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatal("Failed to count questions:", err)
	}
	if count > 0 {
		log.Printf("Questions collection already has %d documents, nothing to do", count)
		return
	}

	inserted := 0
	for i := range defaultQuestions {
		q := &defaultQuestions[i]
		if err := q.Validate(); err != nil {
			log.Printf("Skipping invalid question: %v", err)
			continue
		}
		if err := repo.Insert(ctx, q); err != nil {
			log.Fatal("Failed to insert question:", err)
		}
		inserted++
	}
	log.Printf("Seeded %d questions", inserted)
}

var defaultQuestions = []model.Question{
	// Open deur
	{
		Type: model.RoundOpenDeur,
		Hints: []string{
			"Dit land ligt in Europa",
			"Het staat bekend om zijn kaas en klompen",
			"De hoofdstad is Amsterdam",
			"Oranje is de nationale kleur",
		},
		Answer:  "Nederland",
		Options: []string{"Nederland", "België", "Duitsland", "Denemarken"},
	},
	{
		Type: model.RoundOpenDeur,
		Hints: []string{
			"Dit is een dier",
			"Het heeft zwart-witte strepen",
			"Het lijkt op een paard",
			"Het leeft in Afrika",
		},
		Answer:  "Zebra",
		Options: []string{"Zebra", "Paard", "Giraffe", "Koe"},
	},
	{
		Type: model.RoundOpenDeur,
		Hints: []string{
			"Dit is een vrucht",
			"Het groeit aan bomen",
			"Het is vaak rood of groen",
			"De dokter blijft ermee weg",
		},
		Answer:  "Appel",
		Options: []string{"Appel", "Peer", "Banaan", "Kers"},
	},
	{
		Type: model.RoundOpenDeur,
		Hints: []string{
			"Dit is een gebouw",
			"Het staat in Parijs",
			"Het is gemaakt van ijzer",
			"Het is 330 meter hoog",
		},
		Answer:  "Eiffeltoren",
		Options: []string{"Eiffeltoren", "Big Ben", "Colosseum", "Atomium"},
	},
	{
		Type: model.RoundOpenDeur,
		Hints: []string{
			"Dit is een planeet",
			"Het is de grootste in ons zonnestelsel",
			"Het heeft een grote rode vlek",
			"Het is vernoemd naar een Romeinse god",
		},
		Answer:  "Jupiter",
		Options: []string{"Jupiter", "Saturnus", "Mars", "Neptunus"},
	},

	// Puzzel
	{
		Type:        model.RoundPuzzel,
		Answer1:     "Nederland",
		Answer2:     "België",
		Answer3:     "Frankrijk",
		WordOptions: []string{"Nederland", "België", "Frankrijk", "Duitsland", "Italië", "Spanje", "Amerika", "Engeland", "Portugal"},
	},
	{
		Type:        model.RoundPuzzel,
		Answer1:     "Fiets",
		Answer2:     "Auto",
		Answer3:     "Trein",
		WordOptions: []string{"Fiets", "Auto", "Trein", "Vliegtuig", "Boot", "Paard", "Skateboard", "Helicopter", "Scooter"},
	},
	{
		Type:        model.RoundPuzzel,
		Answer1:     "Zomer",
		Answer2:     "Herfst",
		Answer3:     "Winter",
		WordOptions: []string{"Zomer", "Herfst", "Winter", "Lente", "Maandag", "Januari", "Pasen", "Kerstmis", "Vakantie"},
	},
	{
		Type:        model.RoundPuzzel,
		Answer1:     "Hond",
		Answer2:     "Kat",
		Answer3:     "Konijn",
		WordOptions: []string{"Hond", "Kat", "Konijn", "Paard", "Koe", "Schaap", "Leeuw", "Tijger", "Olifant"},
	},

	// Woordzoeker
	{
		Type:     model.RoundWoordzoeker,
		Question: "De hoofdstad van Nederland",
		Answer:   "AMSTERDAM",
	},
	{
		Type:     model.RoundWoordzoeker,
		Question: "Het grootste dier ter wereld",
		Answer:   "WALVIS",
	},
	{
		Type:     model.RoundWoordzoeker,
		Question: "De kleur van de zon",
		Answer:   "GEEL",
	},
	{
		Type:     model.RoundWoordzoeker,
		Question: "Het tegenovergestelde van dag",
		Answer:   "NACHT",
	},
	{
		Type:     model.RoundWoordzoeker,
		Question: "Een populaire sport met een bal",
		Answer:   "VOETBAL",
	},

	// Wat weet u over
	{
		Type:    model.RoundWatWeetU,
		Subject: "De Fiets",
		Facts: []string{
			"Heeft twee wielen",
			"Heeft een stuur",
			"Heeft een zadel",
			"Je trapt de pedalen",
			"Heeft een bel",
		},
		FactOptions: []string{
			"Heeft twee wielen",
			"Heeft een stuur",
			"Heeft een zadel",
			"Je trapt de pedalen",
			"Heeft een bel",
			"Heeft een motor",
			"Vliegt door de lucht",
			"Heeft vier wielen",
			"Vaart op water",
			"Heeft een dak",
		},
	},
	{
		Type:    model.RoundWatWeetU,
		Subject: "De Zon",
		Facts: []string{
			"Is een ster",
			"Geeft licht",
			"Geeft warmte",
			"Staat in het centrum van ons zonnestelsel",
			"Is geel/oranje van kleur",
		},
		FactOptions: []string{
			"Is een ster",
			"Geeft licht",
			"Geeft warmte",
			"Staat in het centrum van ons zonnestelsel",
			"Is geel/oranje van kleur",
			"Is een planeet",
			"Is koud",
			"Geeft regen",
			"Staat op aarde",
			"Is blauw",
		},
	},
	{
		Type:    model.RoundWatWeetU,
		Subject: "Nederland",
		Facts: []string{
			"Hoofdstad is Amsterdam",
			"Ligt in Europa",
			"Heeft windmolens",
			"Beroemd om tulpen",
			"Heeft koning Willem-Alexander",
		},
		FactOptions: []string{
			"Hoofdstad is Amsterdam",
			"Ligt in Europa",
			"Heeft windmolens",
			"Beroemd om tulpen",
			"Heeft koning Willem-Alexander",
			"Ligt in Afrika",
			"Hoofdstad is Parijs",
			"Heeft een woestijn",
			"Is heel groot",
			"Ligt aan de evenaar",
		},
	},

	// Collectief geheugen
	{
		Type:        model.RoundCollectiefGeheugen,
		Category:    "Kleuren van de Regenboog",
		Answers:     []string{"rood", "oranje", "geel", "groen", "blauw", "indigo", "violet"},
		ItemOptions: []string{"rood", "oranje", "geel", "groen", "blauw", "indigo", "violet", "wit", "zwart", "bruin", "roze", "grijs"},
	},
	{
		Type:        model.RoundCollectiefGeheugen,
		Category:    "Dagen van de Week",
		Answers:     []string{"maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag", "zondag"},
		ItemOptions: []string{"maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag", "zondag", "januari", "februari", "weekend", "werkdag", "feestdag"},
	},
	{
		Type:        model.RoundCollectiefGeheugen,
		Category:    "Seizoenen",
		Answers:     []string{"lente", "zomer", "herfst", "winter"},
		ItemOptions: []string{"lente", "zomer", "herfst", "winter", "maandag", "januari", "vakantie", "pasen", "kerst", "sinterklaas"},
	},
}
