package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/internal/sections"
	"ellavera-site/pkg/logger"
)

const (
	PageHome    = "home"
	PageAbout   = "about"
	PageContact = "contact"

	// featuredProductLimit is how many featured products the home page shows.
	featuredProductLimit = 3
)

// PageView is everything a public section page needs to render.
type PageView struct {
	PageName string
	Sections []models.PageSection
	Data     sections.PageData
}

type PageService struct {
	sections repository.PageSectionRepository
	products repository.ProductRepository
	clients  repository.ResourceRepository[models.Client]
	reviews  repository.ResourceRepository[models.Review]
}

func NewPageService(
	sectionRepo repository.PageSectionRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ResourceRepository[models.Client],
	reviewRepo repository.ResourceRepository[models.Review],
) *PageService {
	return &PageService{
		sections: sectionRepo,
		products: productRepo,
		clients:  clientRepo,
		reviews:  reviewRepo,
	}
}

// Load fetches a page's sections together with the entities its data-fed
// sections list. The home page always loads featured products, clients and
// reviews alongside its sections; other pages load only what their visible
// sections reference. Any failure fails the whole page.
func (s *PageService) Load(ctx context.Context, pageName string) (*PageView, error) {
	pageName = strings.TrimSpace(pageName)
	if pageName == "" {
		return nil, fmt.Errorf("page name is required")
	}

	view := &PageView{PageName: pageName}

	if pageName == PageHome {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			list, err := s.sections.ListSections(gctx, pageName)
			view.Sections = list
			return err
		})
		s.loadData(gctx, g, &view.Data, dataNeeds{products: true, clients: true, reviews: true})
		if err := g.Wait(); err != nil {
			logger.FromContext(ctx).WithError(err).WithField("page", pageName).Warn("Failed to load page content")
			return nil, err
		}
		view.Sections = withListings(sections.VisibleOrdered(view.Sections), view.Sections)
		return view, nil
	}

	list, err := s.sections.ListSections(ctx, pageName)
	if err != nil {
		logger.FromContext(ctx).WithError(err).WithField("page", pageName).Warn("Failed to load page sections")
		return nil, err
	}
	view.Sections = sections.VisibleOrdered(list)

	needs := needsOf(view.Sections)
	if needs.any() {
		g, gctx := errgroup.WithContext(ctx)
		s.loadData(gctx, g, &view.Data, needs)
		if err := g.Wait(); err != nil {
			logger.FromContext(ctx).WithError(err).WithField("page", pageName).Warn("Failed to load page data")
			return nil, err
		}
	}

	return view, nil
}

type dataNeeds struct {
	products bool
	clients  bool
	reviews  bool
}

func (n dataNeeds) any() bool {
	return n.products || n.clients || n.reviews
}

func needsOf(list []models.PageSection) dataNeeds {
	var needs dataNeeds
	for _, section := range list {
		switch sections.NormalizeType(section.SectionType) {
		case sections.TypeProducts:
			needs.products = true
		case sections.TypeClients:
			needs.clients = true
		case sections.TypeReviews:
			needs.reviews = true
		}
	}
	return needs
}

func (s *PageService) loadData(ctx context.Context, g *errgroup.Group, data *sections.PageData, needs dataNeeds) {
	if needs.products {
		g.Go(func() error {
			products, err := s.products.List(ctx, url.Values{"featured": {"true"}})
			if len(products) > featuredProductLimit {
				products = products[:featuredProductLimit]
			}
			data.Products = products
			return err
		})
	}
	if needs.clients {
		g.Go(func() error {
			clients, err := s.clients.List(ctx, nil)
			data.Clients = clients
			return err
		})
	}
	if needs.reviews {
		g.Go(func() error {
			reviews, err := s.reviews.List(ctx, nil)
			data.Reviews = reviews
			return err
		})
	}
}

// withListings appends to the visible list the home page's entity listings
// that no stored section places explicitly. A hidden listing section stays
// hidden.
func withListings(visible, all []models.PageSection) []models.PageSection {
	list := visible
	order := sections.NextOrder(all)
	for _, listing := range []string{sections.TypeProducts, sections.TypeClients, sections.TypeReviews} {
		if _, ok := sections.FindByType(all, listing); ok {
			continue
		}
		list = append(list, models.PageSection{
			PageName:    PageHome,
			SectionType: listing,
			Content:     models.JSONMap(sections.DefaultsFor(listing)),
			Order:       order,
			Visible:     true,
		})
		order++
	}
	return list
}
