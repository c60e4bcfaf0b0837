// backend/cmd/seed-products/main.go
//
// Seeds the products collection with the sample catalog.
// Usage:
//
//	FIRESTORE_PROJECT_ID=<project> go run ./cmd/seed-products
package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	outfs "tienda/internal/adapters/out/firestore"
	productdom "tienda/internal/domain/product"
	appcfg "tienda/internal/infra/config"
	firestoreinfra "tienda/internal/infra/firestore"
)

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
	image       string
}

var sampleProducts = []seedProduct{
	{
		name:        "Laptop Gaming Pro",
		description: "Laptop de alto rendimiento para gaming y trabajo profesional",
		price:       "1299.99",
		stock:       15,
		category:    "Electrónicos",
		image:       "/gaming-laptop.png",
	},
	{
		name:        "Smartphone Moderno",
		description: "Teléfono inteligente con cámara de alta resolución",
		price:       "699.99",
		stock:       25,
		category:    "Electrónicos",
		image:       "/modern-smartphone.png",
	},
	{
		name:        "Auriculares Inalámbricos",
		description: "Auriculares con cancelación de ruido y sonido premium",
		price:       "199.99",
		stock:       30,
		category:    "Audio",
		image:       "/wireless-headphones.png",
	},
	{
		name:        "Tablet Pro",
		description: "Tablet profesional para diseño y productividad",
		price:       "899.99",
		stock:       12,
		category:    "Electrónicos",
		image:       "/professional-tablet.png",
	},
	{
		name:        "Smartwatch Deportivo",
		description: "Reloj inteligente con seguimiento de actividad física",
		price:       "299.99",
		stock:       20,
		category:    "Wearables",
		image:       "/sports-smartwatch.png",
	},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := appcfg.Load()

	cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		log.Fatalf("[seed] firestore init failed: %v", err)
	}
	defer func() { _ = cw.Close() }()

	repo := outfs.NewProductRepositoryFS(cw.Client)
	now := time.Now().UTC()

	log.Printf("[seed] seeding %d products into project %s...", len(sampleProducts), cfg.FirestoreProjectID)

	for _, sp := range sampleProducts {
		p, err := productdom.New(
			"",
			sp.name,
			sp.description,
			decimal.RequireFromString(sp.price),
			sp.stock,
			sp.category,
			sp.image,
			now,
		)
		if err != nil {
			log.Fatalf("[seed] invalid sample product %q: %v", sp.name, err)
		}

		id, err := repo.Create(ctx, p)
		if err != nil {
			log.Fatalf("[seed] create failed for %q: %v", sp.name, err)
		}
		log.Printf("[seed] product created id=%s name=%q", id, sp.name)
	}

	log.Printf("[seed] ✅ all products seeded")
}
