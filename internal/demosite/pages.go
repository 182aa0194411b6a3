package demosite

// pageVersion is one renderable state of a page.
type pageVersion struct {
	Title string
	Body  string
}

// sitePages is the fake merchant site. Pages with multiple versions can
// be flipped through the control endpoints to exercise change detection.
var sitePages = map[string][]pageVersion{
	"/": {{
		Title: "Orbit Supply Co.",
		Body: `<h1>Orbit Supply Co.</h1>
<p>Workshop tools and consumables for small manufacturers. Start your free
trial today, or browse the catalog below. Questions? Write to
sales@orbitsupply.example or call us via the contact page.</p>
<nav>
  <a href="/products">Products</a>
  <a href="/pricing">Pricing</a>
  <a href="/about">About Us</a>
  <a href="/contact">Contact</a>
  <a href="/privacy">Privacy Policy</a>
  <a href="/terms">Terms &amp; Conditions</a>
  <a href="/refunds">Refund Policy</a>
</nav>`,
	}},
	"/products": {{
		Title: "Products - Orbit Supply Co.",
		Body: `<h1>Products</h1>
<div class="product-grid">
  <div class="product-card">Torque Driver Set - $129 <button class="add-to-cart">Add to cart</button></div>
  <div class="product-card">Precision Calipers - $59 <button class="add-to-cart">Add to cart</button></div>
  <div class="product-card">Bench Vise - $89 <button class="add-to-cart">Add to cart</button></div>
</div>`,
	}},
	"/pricing": {
		{
			Title: "Pricing - Orbit Supply Co.",
			Body: `<h1>Pricing</h1>
<table class="pricing-table">
  <tr><td>Workshop plan</td><td>$49 per month subscription</td></tr>
  <tr><td>Factory plan</td><td>$199 per month subscription</td></tr>
</table>`,
		},
		{
			Title: "Pricing - Orbit Supply Co.",
			Body: `<h1>Pricing</h1>
<table class="pricing-table">
  <tr><td>Workshop license</td><td>$499 one-time purchase</td></tr>
  <tr><td>Factory license</td><td>$1999 one-time purchase</td></tr>
</table>`,
		},
	},
	"/about": {{
		Title: "About - Orbit Supply Co.",
		Body: `<h1>About Orbit Supply</h1>
<p>Founded in 2014, Orbit Supply equips small manufacturers with reliable
tools. We ship from three warehouses and support every product we sell.</p>`,
	}},
	"/contact": {{
		Title: "Contact - Orbit Supply Co.",
		Body: `<h1>Contact</h1>
<p>Email: sales@orbitsupply.example</p>
<p>Phone: <a href="tel:+15550100200">+1 555 010 0200</a></p>`,
	}},
	"/privacy": {
		{
			Title: "Privacy Policy - Orbit Supply Co.",
			Body: `<h1>Privacy Policy</h1>
<p>We collect order and account data to fulfil purchases. We never sell
personal data to third parties.</p>`,
		},
		{
			Title: "Privacy Policy - Orbit Supply Co.",
			Body: `<h1>Privacy Policy</h1>
<p>We collect order, account and usage analytics data. Analytics data may
be shared with processing partners.</p>`,
		},
	},
	"/terms": {{
		Title: "Terms & Conditions - Orbit Supply Co.",
		Body: `<h1>Terms &amp; Conditions</h1>
<p>Orders are binding once confirmed. Payment is due at checkout. Disputes
are handled under the law of your local jurisdiction.</p>`,
	}},
	"/refunds": {{
		Title: "Refund Policy - Orbit Supply Co.",
		Body: `<h1>Refund Policy</h1>
<p>Unused items may be returned within 30 days for a full refund.</p>`,
	}},
}

const robotsTxt = `User-agent: *
Disallow: /demo/
`
