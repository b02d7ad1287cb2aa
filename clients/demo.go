package clients

import (
	"strings"

	"github.com/transport-senegal/api/models/route_models"
)

const DemoProviderName = "demo"

// DemoResponder answers without any vendor. It matches greetings and a few
// destinations and otherwise returns a canned sample itinerary.
type DemoResponder struct{}

var greetings = []string{"bonjour", "bonsoir", "salut", "coucou", "hello", "hi", "hey", "salam", "salamalekoum", "nanga def", "na nga def"}

const greetingReply = "Bonjour et bienvenue ! Je suis le conseiller voyage de Transport Sénégal. " +
	"Dites-moi où vous souhaitez aller (Lac Rose, Saint-Louis, Sine-Saloum, Casamance...) " +
	"et combien de jours vous avez, je vous propose un itinéraire."

var destinationReplies = []struct {
	keywords []string
	reply    string
}{
	{[]string{"lac rose", "retba"}, "Le Lac Rose est à environ 1h de Dakar (35 km). Idéal en fin de matinée quand la couleur est la plus vive : balade en pirogue, récolte du sel et déjeuner au bord du lac. Une demi-journée suffit."},
	{[]string{"saint louis", "ndar"}, "Saint-Louis se trouve à environ 4h30 de Dakar (264 km) par Thiès et Louga. Comptez 2 jours : île historique, pont Faidherbe, quartier des pêcheurs de Guet Ndar et parc de la Langue de Barbarie."},
	{[]string{"saloum", "toubakouta", "sine"}, "Le Sine-Saloum est à environ 5h de Dakar. Prévoyez 2 à 3 jours : pirogue dans les bolongs, île aux coquillages de Joal-Fadiouth et observation des oiseaux au coucher du soleil."},
	{[]string{"casamance", "ziguinchor", "cap skirring"}, "La Casamance demande 8 à 9h de route depuis Dakar via la Gambie. Un SUV est recommandé. Restez au moins 4 jours : Ziguinchor, villages d'Oussouye et plages de Cap Skirring."},
	{[]string{"goree"}, "L'île de Gorée se visite en une demi-journée depuis Dakar : chaloupe au port, Maison des Esclaves et ruelles colorées. Je peux vous déposer et vous récupérer à l'embarcadère."},
	{[]string{"touba", "magal"}, "Touba est à environ 2h30 de Dakar par l'autoroute Ila Touba. Pendant le Magal, partez très tôt : la circulation est dense."},
	{[]string{"aeroport", "aibd", "airport"}, "L'aéroport AIBD est à 45 minutes de Dakar par l'autoroute à péage. Je vous attends dans le hall des arrivées avec une pancarte, de jour comme de nuit."},
	{[]string{"prix", "tarif", "combien", "devis", "price"}, "Les tarifs dépendent de la distance et du véhicule (Berline Confort, Berline Premium ou SUV). Remplissez le formulaire de devis pour obtenir un prix immédiat, ou écrivez-moi sur WhatsApp."},
}

const defaultReply = "Voici une idée de circuit de 5 jours : " +
	"Jour 1, Dakar et l'île de Gorée. Jour 2, Lac Rose puis route vers Saint-Louis. " +
	"Jour 3, Saint-Louis et la Langue de Barbarie. Jour 4, retour par Thiès vers Saly. " +
	"Jour 5, Sine-Saloum en pirogue. Demandez un devis pour réserver votre chauffeur."

func (DemoResponder) Name() string { return DemoProviderName }

// Reply picks a canned answer for message.
func (DemoResponder) Reply(message string) string {
	text := " " + route_models.Normalize(message) + " "

	// a named destination wins over a greeting in the same message
	for _, d := range destinationReplies {
		for _, kw := range d.keywords {
			if strings.Contains(text, " "+kw+" ") {
				return d.reply
			}
		}
	}
	for _, g := range greetings {
		if strings.Contains(text, " "+g+" ") {
			return greetingReply
		}
	}
	return defaultReply
}
