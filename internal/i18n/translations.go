package i18n

import "golang.org/x/text/language"

// Translations of the user-facing strings, by language. English strings are the message IDs themselves.
var translations = map[language.Tag]map[string]string{
	language.French: {
		// Sections.
		"Time":                                   "Temps",
		"Date range, relative date, time of day, etc.": "Plage de dates, date relative, heure de la journée, etc.",
		"Location":                               "Lieu",
		"City, State, Country, ZIP code.":        "Ville, État, Pays, code postal.",
		"ID":                                     "ID",
		"User ID, product ID, event ID, etc.":    "ID utilisateur, ID produit, ID événement, etc.",
		"Number":                                 "Nombre",
		"Subtotal, Age, Price, Quantity, etc.":   "Sous-total, Âge, Prix, Quantité, etc.",
		"Other Categories":                       "Autres catégories",
		"Category, Type, Model, Rating, etc.":    "Catégorie, Type, Modèle, Note, etc.",
		"Date":                                   "Date",
		"Category":                               "Catégorie",

		// Date options.
		"Month and Year":                               "Mois et année",
		"Like January, 2016":                           "Comme janvier 2016",
		"Quarter and Year":                             "Trimestre et année",
		"Like Q1, 2016":                                "Comme T1 2016",
		"Single Date":                                  "Date unique",
		"Like January 31, 2016":                        "Comme le 31 janvier 2016",
		"Date Range":                                   "Plage de dates",
		"Like December 25, 2015 - February 14, 2016":   "Comme du 25 décembre 2015 au 14 février 2016",
		"Relative Date":                                "Date relative",
		`Like "the last 7 days" or "this month"`:       `Comme « les 7 derniers jours » ou « ce mois-ci »`,
		"Date Filter":                                  "Filtre de date",
		"All Options":                                  "Toutes les options",
		"Contains all of the above":                    "Contient toutes les options ci-dessus",

		// Number options.
		"Equal to":                 "Égal à",
		"Not equal to":             "Différent de",
		"Between":                  "Entre",
		"Greater than or equal to": "Supérieur ou égal à",
		"Less than or equal to":    "Inférieur ou égal à",

		// String options.
		"Dropdown": "Liste déroulante",
		"Select one or more values from a list or search box.": "Sélectionnez une ou plusieurs valeurs dans une liste ou une zone de recherche.",
		"Is not":                                           "N'est pas",
		"Exclude one or more specific values.":             "Exclut une ou plusieurs valeurs.",
		"Contains":                                         "Contient",
		"Match values that contain the entered text.":      "Valeurs contenant le texte saisi.",
		"Does not contain":                                 "Ne contient pas",
		"Filter out values that contain the entered text.": "Exclut les valeurs contenant le texte saisi.",
		"Starts with":                                      "Commence par",
		"Match values that begin with the entered text.":   "Valeurs commençant par le texte saisi.",
		"Ends with":                                        "Se termine par",
		"Match values that end with the entered text.":     "Valeurs se terminant par le texte saisi.",

		// Legacy location options.
		"City":               "Ville",
		"State":              "État",
		"ZIP or Postal Code": "Code postal",
		"Country":            "Pays",
	},
}
