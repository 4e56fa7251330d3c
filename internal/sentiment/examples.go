package sentiment

// ExampleReview seeds the UI with reviews users can analyze with one click.
type ExampleReview struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

var ExampleReviews = []ExampleReview{
	{
		Label: "positive",
		Text: "This movie was absolutely brilliant! The acting was superb, and the plot " +
			"kept me engaged throughout. The cinematography was breathtaking, and the " +
			"score perfectly complemented each scene.",
	},
	{
		Label: "negative",
		Text: "I was really disappointed with this film. The plot had numerous holes, " +
			"the dialogue felt forced, and the special effects were dated. I wouldn't " +
			"recommend it.",
	},
}
