package domain

// ListView is the derived state of the list view over one fetched collection.
// Every criteria mutation recomputes the visible set and resets the page to 1;
// page moves never touch the visible set.
type ListView struct {
	all        []Product
	categories []string
	criteria   Criteria
	visible    []Product
	page       int
}

// NewListView mounts a list view over the fetched collection with default criteria
func NewListView(all []Product) *ListView {
	v := &ListView{
		all:        all,
		categories: Categories(all),
		criteria:   DefaultCriteria(),
	}
	v.derive()
	return v
}

func (v *ListView) derive() {
	v.visible = VisibleProducts(v.all, v.criteria)
	v.page = 1
}

// Apply replaces the criteria. It reports whether anything changed.
func (v *ListView) Apply(c Criteria) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	if c == v.criteria {
		return false, nil
	}
	v.criteria = c
	v.derive()
	return true, nil
}

// SetCategory selects a category; "" selects all of them
func (v *ListView) SetCategory(category string) error {
	c := v.criteria
	c.Category = category
	_, err := v.Apply(c)
	return err
}

// SetMaxPrice moves the inclusive price bound
func (v *ListView) SetMaxPrice(price float64) error {
	c := v.criteria
	c.MaxPrice = price
	_, err := v.Apply(c)
	return err
}

// SetRatingTier toggles one of the rating tiers
func (v *ListView) SetRatingTier(tier RatingTier, on bool) error {
	c, err := v.criteria.WithTier(tier, on)
	if err != nil {
		return err
	}
	_, err = v.Apply(c)
	return err
}

// SetSearch changes the title search term
func (v *ListView) SetSearch(term string) error {
	c := v.criteria
	c.Search = term
	_, err := v.Apply(c)
	return err
}

// Update applies c one criterion at a time through the setters, touching only
// the criteria that differ. c is validated up front so a rejected update leaves
// the view unchanged.
func (v *ListView) Update(c Criteria) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	current := v.criteria
	if c.Category != current.Category {
		if err := v.SetCategory(c.Category); err != nil {
			return false, err
		}
	}
	if c.MaxPrice != current.MaxPrice {
		if err := v.SetMaxPrice(c.MaxPrice); err != nil {
			return false, err
		}
	}
	for _, tier := range []RatingTier{FourStarsAndAbove, FiveStarsOnly} {
		if c.Tier(tier) != current.Tier(tier) {
			if err := v.SetRatingTier(tier, c.Tier(tier)); err != nil {
				return false, err
			}
		}
	}
	if c.Search != current.Search {
		if err := v.SetSearch(c.Search); err != nil {
			return false, err
		}
	}
	return v.criteria != current, nil
}

// GoToPage moves the pagination window. Page 1 is always accepted so an empty result keeps stable controls.
func (v *ListView) GoToPage(page int) error {
	if page != 1 && (page < 1 || page > v.PageCount()) {
		return ErrPageOutOfRange
	}
	v.page = page
	return nil
}

func (v *ListView) Criteria() Criteria      { return v.criteria }
func (v *ListView) Categories() []string    { return v.categories }
func (v *ListView) Visible() []Product      { return v.visible }
func (v *ListView) CurrentPage() int        { return v.page }
func (v *ListView) PageCount() int          { return PageCount(len(v.visible), PageSize) }
func (v *ListView) PageNumbers() []int      { return PageNumbers(len(v.visible), PageSize) }
func (v *ListView) Total() int              { return len(v.all) }
func (v *ListView) CurrentItems() []Product { return Page(v.visible, v.page, PageSize) }

// Lookup finds a product of the mounted collection by identifier
func (v *ListView) Lookup(id string) (Product, bool) {
	for _, p := range v.all {
		if p.Key() == id {
			return p, true
		}
	}
	return Product{}, false
}
