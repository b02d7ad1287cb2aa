package content_models

// Testimonial is a customer review shown on the landing page.
type Testimonial struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
	Trip    string `json:"trip"`
}

// GalleryImage references a photo served by the frontend.
type GalleryImage struct {
	ID       int    `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Category string `json:"category"`
}

// Driver is the public profile of the driver / guide.
type Driver struct {
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	YearsExperience int      `json:"yearsExperience"`
	Languages       []string `json:"languages"`
	Bio             string   `json:"bio"`
	Specialties     []string `json:"specialties"`
	WhatsApp        string   `json:"whatsapp,omitempty"`
	Email           string   `json:"email,omitempty"`
}

var testimonials = []Testimonial{
	{1, "Claire M.", "France", 5, "Accueil à l'AIBD à 3h du matin, chauffeur ponctuel et souriant. Le trajet jusqu'à Saly s'est fait en toute sérénité.", "AIBD → Saly"},
	{2, "James O.", "United Kingdom", 5, "Great guide for our week in the Sine-Saloum. Knew every village and spoke perfect English.", "Dakar → Toubakouta"},
	{3, "Fatou S.", "Sénégal", 5, "Service impeccable pour le Magal, véhicule propre et climatisé malgré la foule.", "Dakar → Touba"},
	{4, "Marco R.", "Italia", 4, "Bel viaggio fino a Saint-Louis, soste ben scelte lungo la strada.", "Dakar → Saint-Louis"},
	{5, "Sophie L.", "Belgique", 5, "Le 4x4 était parfait pour la Casamance. Je recommande sans hésiter.", "Dakar → Cap Skirring"},
}

var gallery = []GalleryImage{
	{1, "/images/gallery/lac-rose.jpg", "Le Lac Rose au coucher du soleil", "paysages"},
	{2, "/images/gallery/ile-de-goree.jpg", "Maisons colorées de l'île de Gorée", "culture"},
	{3, "/images/gallery/saint-louis-pont.jpg", "Le pont Faidherbe à Saint-Louis", "culture"},
	{4, "/images/gallery/sine-saloum-pirogue.jpg", "Pirogue dans les bolongs du Sine-Saloum", "nature"},
	{5, "/images/gallery/touba-mosquee.jpg", "La grande mosquée de Touba", "culture"},
	{6, "/images/gallery/berline-premium.jpg", "Berline Premium devant l'AIBD", "vehicules"},
	{7, "/images/gallery/suv-casamance.jpg", "SUV sur les pistes de Casamance", "vehicules"},
	{8, "/images/gallery/cap-skirring-plage.jpg", "Plage de Cap Skirring", "paysages"},
}

var driver = Driver{
	Name:            "Transport Sénégal",
	Title:           "Chauffeur privé et guide touristique",
	YearsExperience: 12,
	Languages:       []string{"Français", "English", "Wolof", "Español"},
	Bio: "Basé à Dakar, je conduis voyageurs et familles à travers tout le Sénégal : " +
		"transferts aéroport AIBD, excursions au Lac Rose, circuits dans le Sine-Saloum et en Casamance.",
	Specialties: []string{"Transferts aéroport", "Circuits sur mesure", "Pèlerinages (Touba, Tivaouane)", "Voyages d'affaires"},
}

// Testimonials returns a copy of the testimonial list.
func Testimonials() []Testimonial {
	return append([]Testimonial(nil), testimonials...)
}

// GalleryImages returns the gallery, optionally filtered by category.
func GalleryImages(category string) []GalleryImage {
	out := make([]GalleryImage, 0, len(gallery))
	for _, img := range gallery {
		if category == "" || img.Category == category {
			out = append(out, img)
		}
	}
	return out
}

// DriverProfile fills the contact fields from configuration.
func DriverProfile(name, whatsapp, email string) Driver {
	d := driver
	if name != "" {
		d.Name = name
	}
	d.WhatsApp = whatsapp
	d.Email = email
	d.Languages = append([]string(nil), driver.Languages...)
	d.Specialties = append([]string(nil), driver.Specialties...)
	return d
}
