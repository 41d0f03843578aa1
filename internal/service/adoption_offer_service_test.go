package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/adoption-service/internal/cache"
	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/events"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/repository/memory"
)

type offerFixture struct {
	svc        *AdoptionOfferService
	pets       repository.PetRepository
	dispatcher events.Dispatcher
	pet        *domain.Pet
}

func newOfferFixture(t *testing.T) *offerFixture {
	t.Helper()
	pets := memory.NewPetRepository()
	offers := memory.NewAdoptionOfferRepository()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAdoptionOfferService(offers, pets, cache.NewOfferCache(nil), dispatcher)
	return &offerFixture{
		svc:        svc,
		pets:       pets,
		dispatcher: dispatcher,
		pet:        seedPet(t, pets, domain.PetStatusTransit),
	}
}

func (f *offerFixture) createInput() AdoptionOfferCreateInput {
	return AdoptionOfferCreateInput{
		PetID:    f.pet.ID,
		Title:    "Rex needs a home",
		Headline: "Friendly two year old shepherd looking for a family.",
	}
}

func TestCreateOfferDefaultsToDraft(t *testing.T) {
	f := newOfferFixture(t)

	detail, err := f.svc.CreateOffer(context.Background(), f.createInput())
	require.NoError(t, err)
	assert.Equal(t, domain.AdoptionOfferStatusDraft, detail.Offer.Status)
	require.NotNil(t, detail.Pet)
	assert.Equal(t, f.pet.ID, detail.Pet.ID)
}

func TestCreateOfferValidation(t *testing.T) {
	f := newOfferFixture(t)

	input := f.createInput()
	input.Title = strings.Repeat("x", 31)
	input.Headline = strings.Repeat("x", 121)
	input.Status = strPtr("archived")
	_, err := f.svc.CreateOffer(context.Background(), input)
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Fields["title"], "The title field must not be greater than 30 characters.")
	assert.Contains(t, domainErr.Fields["headline"], "The headline field must not be greater than 120 characters.")
	assert.Contains(t, domainErr.Fields["status"], "The selected status is invalid.")
}

func TestCreateOfferRequiresTransitPet(t *testing.T) {
	f := newOfferFixture(t)
	adopted := seedPet(t, f.pets, domain.PetStatusAdopted)

	input := f.createInput()
	input.PetID = adopted.ID
	_, err := f.svc.CreateOffer(context.Background(), input)
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "Pet must be in transit to create an adoption offer", domainErr.Message)
}

func TestCreateOfferConflict(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOffer(ctx, f.createInput())
	require.NoError(t, err)

	_, err = f.svc.CreateOffer(ctx, f.createInput())
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, "Pet already has an adoption offer", domainErr.Message)
}

func TestUpdateOfferRePointConflict(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	detail, err := f.svc.CreateOffer(ctx, f.createInput())
	require.NoError(t, err)

	second := seedPet(t, f.pets, domain.PetStatusTransit)
	input := f.createInput()
	input.PetID = second.ID
	_, err = f.svc.CreateOffer(ctx, input)
	require.NoError(t, err)

	_, err = f.svc.UpdateOffer(ctx, detail.Offer.ID, AdoptionOfferUpdateInput{PetID: &second.ID})
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestPublishAndDraftAreIdempotent(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	detail, err := f.svc.CreateOffer(ctx, f.createInput())
	require.NoError(t, err)

	offer, err := f.svc.Publish(ctx, detail.Offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AdoptionOfferStatusPublished, offer.Status)

	offer, err = f.svc.Publish(ctx, detail.Offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AdoptionOfferStatusPublished, offer.Status)

	offer, err = f.svc.Draft(ctx, detail.Offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AdoptionOfferStatusDraft, offer.Status)

	offer, err = f.svc.Draft(ctx, detail.Offer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AdoptionOfferStatusDraft, offer.Status)
}

func TestUpdateOfferDispatchesStatusEvents(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	var got []events.EventType
	record := func(_ context.Context, e events.Event) error {
		got = append(got, e.Type)
		return nil
	}
	f.dispatcher.Subscribe(events.EventAdoptionOfferPublished, record)
	f.dispatcher.Subscribe(events.EventAdoptionOfferClosed, record)

	detail, err := f.svc.CreateOffer(ctx, f.createInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateOffer(ctx, detail.Offer.ID, AdoptionOfferUpdateInput{Status: strPtr("published")})
	require.NoError(t, err)
	_, err = f.svc.UpdateOffer(ctx, detail.Offer.ID, AdoptionOfferUpdateInput{Status: strPtr("closed")})
	require.NoError(t, err)

	// Re-submitting the same status is not a transition.
	_, err = f.svc.UpdateOffer(ctx, detail.Offer.ID, AdoptionOfferUpdateInput{Status: strPtr("closed")})
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{
		events.EventAdoptionOfferPublished,
		events.EventAdoptionOfferClosed,
	}, got)
}

func TestListPublishedOffers(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	detail, err := f.svc.CreateOffer(ctx, f.createInput())
	require.NoError(t, err)

	published, err := f.svc.ListPublishedOffers(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)

	_, err = f.svc.Publish(ctx, detail.Offer.ID)
	require.NoError(t, err)

	published, err = f.svc.ListPublishedOffers(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, detail.Offer.ID, published[0].Offer.ID)
}

func TestDeleteOfferNotFound(t *testing.T) {
	f := newOfferFixture(t)

	err := f.svc.DeleteOffer(context.Background(), "missing-id")
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "Adoption offer not found", domainErr.Message)
}
