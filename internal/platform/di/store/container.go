// backend/internal/platform/di/store/container.go
package store

import (
	"context"
	"errors"
	"log"
	"strings"

	usecase "tienda/internal/application/usecase"

	// outbound
	outfs "tienda/internal/adapters/out/firestore"
	gcso "tienda/internal/adapters/out/gcs"
	mailout "tienda/internal/adapters/out/mail"
	memout "tienda/internal/adapters/out/memory"

	shared "tienda/internal/platform/di/shared"
)

const defaultSendGridSecretID = "tienda-sendgrid-api-key"

// Container is the storefront DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Infra *shared.Infra

	// session carts (in-memory; swept by cmd/store)
	CartStore *memout.CartStore

	// Usecases
	CatalogUC  *usecase.CatalogUsecase
	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	OrderUC    *usecase.OrderUsecase
	ProductUC  *usecase.ProductUsecase
}

func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	// shared infra
	if infra == nil {
		var err error
		infra, err = shared.NewInfra(ctx)
		if err != nil {
			return nil, err
		}
	}
	if infra.Config == nil {
		return nil, errors.New("di.store: shared infra config is nil")
	}

	fsClient := infra.Firestore
	if fsClient == nil {
		return nil, errors.New("di.store: infra.Firestore is nil")
	}

	c := &Container{Infra: infra}

	// --------------------------------------------------------
	// Firestore repositories
	// --------------------------------------------------------
	productRepo := outfs.NewProductRepositoryFS(fsClient)
	orderRepo := outfs.NewOrderRepositoryFS(fsClient)

	// --------------------------------------------------------
	// Session cart store (in-memory, TTL-swept)
	// --------------------------------------------------------
	c.CartStore = memout.NewCartStore()

	// --------------------------------------------------------
	// Product image store (optional)
	// --------------------------------------------------------
	var images usecase.ImageStore
	if infra.GCS != nil && infra.ProductImageBucket != "" {
		repo := gcso.NewProductImageRepositoryGCS(infra.GCS, infra.ProductImageBucket)
		if base := strings.TrimSpace(infra.Config.GCSPublicBaseURL); base != "" {
			repo.PublicBaseURL = base
		}
		images = repo
	} else {
		log.Printf("[di.store] product image store not configured (GCS client or bucket missing)")
	}

	// --------------------------------------------------------
	// Confirmation mailer (optional)
	// --------------------------------------------------------
	var mailer usecase.ConfirmationMailer
	if apiKey := resolveSendGridAPIKey(ctx, infra); apiKey != "" {
		client := mailout.NewSendGridClient(apiKey)
		mailer = mailout.NewOrderConfirmationMailer(client, infra.MailFromAddress, infra.StoreBaseURL)
		log.Printf("[di.store] order confirmation mailer initialized from=%s", infra.MailFromAddress)
	} else {
		log.Printf("[di.store] order confirmation mailer not configured (no SendGrid API key)")
	}

	// --------------------------------------------------------
	// Usecases
	// --------------------------------------------------------
	c.CatalogUC = usecase.NewCatalogUsecase(productRepo)
	c.CartUC = usecase.NewCartUsecase(c.CartStore, productRepo)
	c.CheckoutUC = usecase.NewCheckoutUsecase(c.CartStore, productRepo, orderRepo, mailer)
	c.OrderUC = usecase.NewOrderUsecase(orderRepo)
	c.ProductUC = usecase.NewProductUsecase(productRepo, images)

	return c, nil
}

// resolveSendGridAPIKey prefers the env var; falls back to Secret Manager.
func resolveSendGridAPIKey(ctx context.Context, infra *shared.Infra) string {
	if key := strings.TrimSpace(infra.Config.SendGridAPIKey); key != "" {
		return key
	}
	if infra.SecretManager == nil {
		return ""
	}

	secretID := strings.TrimSpace(infra.Config.SendGridSecretName)
	if secretID == "" {
		secretID = defaultSendGridSecretID
	}

	p := &sendGridKeyProviderSM{
		sm:        infra.SecretManager,
		projectID: infra.ProjectID,
		secretID:  secretID,
	}
	key, err := p.APIKey(ctx)
	if err != nil {
		log.Printf("[di.store] WARN: sendgrid key lookup failed: %v", err)
		return ""
	}
	return key
}
