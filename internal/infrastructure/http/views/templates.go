package views

import (
	"html/template"
	"strings"

	"github.com/dustin/go-humanize"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"price": func(p float64) string {
		return humanize.Ftoa(p)
	},
	"reviews": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"brand": func(category string) string {
		if strings.TrimSpace(category) == "" {
			return "Unknown Brand"
		}
		return category
	},
}

// templates holds the page bodies; each defines "content" and is rendered inside "layout".
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
    <style>
        .product-row img { width: 200px; height: 200px; object-fit: contain; margin-right: 20px; }
        .product-actions { min-width: 160px; }
    </style>
</head>
<body>
{{template "content" .}}
</body>
</html>`,

	"dashboard": `{{define "content"}}
{{$d := .Dashboard}}
<div class="container">
{{if $d.Notice}}
  <div class="alert alert-success mt-3" role="status">{{$d.Notice}}</div>
{{end}}
  <div class="row">
    <nav class="col-md-3">
      <h4 class="text-primary mt-4">Filters</h4>
      <form method="post" action="/filters">
        <h5>Category</h5>
        <select class="form-select mb-3" name="category">
          <option value="">All Categories</option>
          {{range $d.Listing.Categories}}
          <option value="{{.}}" {{if eq . $d.Listing.Criteria.Category}}selected{{end}}>{{.}}</option>
          {{end}}
        </select>
        <hr>
        <h5>Price Range</h5>
        <input type="range" name="max_price" min="0" max="{{.MaxPrice}}" step="10" value="{{$d.Listing.Criteria.MaxPrice}}" class="form-range mb-3">
        <div><span>Selected Max Price: ${{price $d.Listing.Criteria.MaxPrice}}</span></div>
        <hr>
        <div><b>Search Products</b></div>
        <input type="text" name="search" placeholder="Search Products..." value="{{$d.Listing.Criteria.Search}}" class="form-control mb-3">
        <hr>
        <h5>Ratings</h5>
        <div>
          <input type="checkbox" id="fourStars" name="four_stars" {{if $d.Listing.Criteria.FourStars}}checked{{end}}>
          <label for="fourStars"> 4 Stars &amp; above</label>
        </div>
        <div>
          <input type="checkbox" id="fiveStars" name="five_stars" {{if $d.Listing.Criteria.FiveStars}}checked{{end}}>
          <label for="fiveStars"> 5 Stars only</label>
        </div>
        <button type="submit" class="btn btn-secondary btn-sm mt-3">Apply</button>
      </form>
      <hr>
      <h5>Cart</h5>
      <p>{{$d.Cart.Count}} item(s), ${{price $d.Cart.Total}}</p>
      {{if $d.Cart.Count}}<a href="/cart/export.xlsx" class="btn btn-outline-primary btn-sm">Download cart</a>{{end}}
      <form method="post" action="/reset" class="mt-2">
        <button type="submit" class="btn btn-link btn-sm p-0">Start over</button>
      </form>
    </nav>

    <main class="col-md-9">
      <h2 class="my-4">Product Dashboard</h2>
      <div class="product-list">
        {{range $d.Listing.Products}}
        <div class="product-row d-flex align-items-center mb-4">
          <img src="{{.Image}}" alt="{{.Title}}">
          <div class="product-details flex-grow-1">
            <h5 class="product-title">{{.Title}}</h5>
            <ul class="list-unstyled">
              <li><strong>Rating:</strong> {{.Rate}} ({{reviews .ReviewCount}} reviews)</li>
              <li><strong>Brand:</strong> {{brand .Category}}</li>
              <li>{{.Description}}</li>
            </ul>
            <hr>
          </div>
          <div class="product-actions text-end">
            <span class="h3">${{price .Price}}</span>
            <div>
              <a href="/product/{{.ID}}" class="btn btn-info btn-sm">View</a>
              <form method="post" action="/cart" class="d-inline">
                <input type="hidden" name="product_id" value="{{.ID}}">
                <button type="submit" class="btn btn-primary btn-sm">Add to Cart</button>
              </form>
            </div>
          </div>
        </div>
        {{end}}
        <hr>
      </div>

      <ul class="pagination justify-content-center">
        {{range $d.Listing.Pages}}
        <li class="page-item {{if eq . $d.Listing.Page}}active{{end}}">
          <a href="/?page={{.}}" class="page-link">{{.}}</a>
        </li>
        {{end}}
      </ul>
    </main>
  </div>
</div>
{{end}}`,

	"detail": `{{define "content"}}
{{$s := .Detail}}
{{if eq $s.Status "pending"}}
<div>Loading...</div>
{{else if eq $s.Status "failure"}}
<div>{{$s.Error}}</div>
{{else}}
{{with $s.Product}}
<div class="container my-4">
  <div class="card shadow-lg">
    <div class="row g-0">
      <div class="col-md-4">
        <img src="{{.Image}}" alt="{{.Title}}" class="img-fluid rounded-start" style="height: 500px; object-fit: contain;">
      </div>
      <div class="col-md-6">
        <div class="card-body">
          <h2 class="card-title">{{.Title}}</h2>
          <p class="card-text">{{.Description}}</p>
          <p class="card-text"><strong>Category:</strong> {{.Category}}</p>
          <p class="card-text"><strong>Price:</strong> ${{price .Price}}</p>
          <p class="card-text"><strong>Rating:</strong> {{.Rate}} ({{reviews .ReviewCount}} reviews)</p>
          <a href="/" class="btn btn-primary">Back to products</a>
        </div>
      </div>
    </div>
  </div>
</div>
{{end}}
{{end}}
{{end}}`,

	"error": `{{define "content"}}
<div class="container my-5 text-center">
  <h1 class="h3 mb-3">Error</h1>
  <p class="text-muted">{{.Message}}</p>
  <a href="/">Return to products</a>
</div>
{{end}}`,
}
