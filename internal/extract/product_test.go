package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const productHTML = `<!DOCTYPE html>
<html>
<head>
	<link rel="canonical" href="https://shop.example.com/p/55/garden-shed">
</head>
<body>
	<div class="breadcrumbs">
		<a href="/">Home</a>
		<a href="/c/2">Garden</a>
		<a href="/c/9/sheds">Sheds</a>
	</div>
	<h1>Garden Shed 3x2</h1>
	<span class="badge">Sale</span>
	<span class="product-flag">Free shipping</span>
	<div class="perex">Compact shed for small gardens.</div>
	<div class="description">Full description with assembly notes.</div>
	<div class="product-gallery">
		<img src="/img/shed-1.jpg">
		<img src="/img/shed-2.jpg">
		<img src="/img/shed-1.jpg">
	</div>
	<table class="parameters">
		<tr><th>Material</th><td>Steel</td></tr>
		<tr><th>Width</th><td>300 cm</td></tr>
		<tr><th>Manufacturer</th><td>ShedCo</td></tr>
	</table>
	<table class="variants">
		<thead>
			<tr><th>Colour</th><th>Price incl. VAT</th><th>Availability</th></tr>
		</thead>
		<tbody>
			<tr>
				<td>Green</td>
				<td>770 €</td>
				<td><span style="color: #28a745">In stock</span></td>
			</tr>
			<tr>
				<td>Grey</td>
				<td>1 250,00 €</td>
				<td style="color: #dc3545">Sold out</td>
			</tr>
		</tbody>
	</table>
</body>
</html>`

func TestProductPage(t *testing.T) {
	t.Parallel()

	rec, err := ProductPage(productHTML, "https://shop.example.com/p/55/garden-shed?ref=x")
	require.NoError(t, err)

	require.Equal(t, "Garden Shed 3x2", rec.Name)
	require.Equal(t, "https://shop.example.com/p/55/garden-shed", rec.URL)
	require.Equal(t, "Compact shed for small gardens.", rec.ShortDescription)
	require.Equal(t, "Full description with assembly notes.", rec.LongDescription)
	require.Equal(t, []string{"Home", "Garden", "Sheds"}, rec.Breadcrumbs)
	require.Equal(t, "Sheds", rec.Category.Name)
	require.Equal(t, "https://shop.example.com/c/9/sheds", rec.Category.URL)
	require.Equal(t, []string{"Sale", "Free shipping"}, rec.Badges)

	require.Equal(t, map[string]string{
		"material": "Steel",
		"width":    "300 cm",
		"brand":    "ShedCo",
	}, rec.Parameters)

	require.Equal(t, []string{
		"https://shop.example.com/img/shed-1.jpg",
		"https://shop.example.com/img/shed-2.jpg",
	}, rec.Images)

	require.Len(t, rec.Variants, 2)

	green := rec.Variants[0]
	require.Equal(t, "Green", green.Attributes["color"])
	require.Equal(t, "770.00", green.PriceInclVAT)
	require.Equal(t, "636.36", green.PriceExclVAT)
	require.True(t, green.InStock)
	require.Equal(t, "In stock", green.StatusText)

	grey := rec.Variants[1]
	require.Equal(t, "Grey", grey.Attributes["color"])
	require.Equal(t, "1250.00", grey.PriceInclVAT)
	require.Equal(t, "1033.06", grey.PriceExclVAT)
	require.False(t, grey.InStock)
	require.Equal(t, "Sold out", grey.StatusText)
}

func TestProductPageSynthesizedVariant(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h1>Simple Bench</h1>
		<div class="price">500 €</div>
		<div class="availability"><span style="color:#28a745">Ready to ship</span></div>
	</body></html>`

	rec, err := ProductPage(html, "https://shop.example.com/p/7/bench")
	require.NoError(t, err)

	require.Len(t, rec.Variants, 1)
	v := rec.Variants[0]
	require.Equal(t, "500.00", v.PriceInclVAT)
	require.Equal(t, "413.22", v.PriceExclVAT)
	require.True(t, v.InStock)
	require.Equal(t, "Ready to ship", v.StatusText)
	require.Empty(t, v.Attributes)
}

func TestProductPageNoPriceNoVariants(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h1>Discontinued Item</h1>
		<div class="price">N/A</div>
	</body></html>`

	rec, err := ProductPage(html, "https://shop.example.com/p/8/old")
	require.NoError(t, err)
	require.Empty(t, rec.Variants)
}

func TestProductPageUnknownVariantColumn(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<table class="variants">
			<tbody>
				<tr><td>XL</td><td>99,90 €</td></tr>
			</tbody>
		</table>
	</body></html>`

	rec, err := ProductPage(html, "https://shop.example.com/p/9/shirt")
	require.NoError(t, err)

	require.Len(t, rec.Variants, 1)
	v := rec.Variants[0]
	require.Equal(t, "XL", v.Attributes["col_0"])
	require.Equal(t, "99,90 €", v.Attributes["col_1"])
	require.Empty(t, v.PriceInclVAT)
}
