package catalog

import "github.com/go-ports/gomate/internal/models"

var destinations = []models.Destination{
	{
		ID:              "1",
		Name:            "Sigiriya",
		Location:        "Sigiriya, Matale District",
		Image:           "sigiriya.jpg",
		Rating:          4.8,
		Category:        "cultural",
		Description:     "Ancient rock fortress rising above the central plains, crowned by palace ruins and frescoes.",
		Transport:       []string{"Bus", "Car", "Tuk-tuk"},
		Status:          "Open",
		BestTimeToVisit: "January to April",
		FullDescription: "Sigiriya is a fifth-century citadel built by King Kashyapa on top of a 180-metre granite column. " +
			"The climb passes the Mirror Wall, the painted maidens and the giant lion paws that once formed the gateway to the summit palace.",
		Highlights: []string{"Lion Gate", "Sigiriya frescoes", "Water gardens", "Pidurangala sunrise view"},
	},
	{
		ID:              "2",
		Name:            "Kandy",
		Location:        "Kandy, Central Province",
		Image:           "kandy.jpg",
		Rating:          4.7,
		Category:        "cultural",
		Description:     "Hill capital set around a lake, home to the Temple of the Sacred Tooth Relic.",
		Transport:       []string{"Train", "Bus", "Car"},
		Status:          "Open",
		BestTimeToVisit: "December to April",
		FullDescription: "The last royal capital of the Sinhalese kings, Kandy hosts the Esala Perahera pageant every July or August. " +
			"Its botanical gardens at Peradeniya hold one of the finest orchid collections in Asia.",
		Highlights: []string{"Temple of the Tooth", "Kandy Lake", "Peradeniya Botanical Gardens", "Esala Perahera"},
	},
	{
		ID:              "3",
		Name:            "Ella",
		Location:        "Ella, Badulla District",
		Image:           "ella.jpg",
		Rating:          4.9,
		Category:        "nature",
		Description:     "Mountain village of tea estates, waterfalls and the Nine Arch Bridge.",
		Transport:       []string{"Train", "Bus", "Tuk-tuk"},
		Status:          "Open",
		BestTimeToVisit: "January to March",
		FullDescription: "Reached by one of the most scenic train rides in the world, Ella sits in a gap of the hill country. " +
			"Short hikes lead to Little Adam's Peak and Ella Rock, with views across the southern plains.",
		Highlights: []string{"Nine Arch Bridge", "Little Adam's Peak", "Ella Rock", "Ravana Falls"},
	},
	{
		ID:              "4",
		Name:            "Galle Fort",
		Location:        "Galle, Southern Province",
		Image:           "galle.jpg",
		Rating:          4.6,
		Category:        "cultural",
		Description:     "Colonial fortified town of ramparts, lighthouses and cobbled lanes on the southern coast.",
		Transport:       []string{"Train", "Bus", "Car"},
		Status:          "Open",
		BestTimeToVisit: "November to April",
		FullDescription: "Built by the Portuguese and extended by the Dutch, Galle Fort is a living town inside a UNESCO-listed wall. " +
			"Sunset walks along the ramparts end at the lighthouse on Point Utrecht bastion.",
		Highlights: []string{"Galle Lighthouse", "Dutch Reformed Church", "Rampart walk", "Flag Rock"},
	},
	{
		ID:              "5",
		Name:            "Mirissa",
		Location:        "Mirissa, Matara District",
		Image:           "mirissa.jpg",
		Rating:          4.5,
		Category:        "beach",
		Description:     "Crescent beach town known for surfing, sunsets and blue whale watching.",
		Transport:       []string{"Bus", "Car", "Tuk-tuk"},
		Status:          "Open",
		BestTimeToVisit: "November to April",
		FullDescription: "Mirissa is the launch point for whale watching trips to the continental shelf, where blue whales pass close to shore. " +
			"Coconut Tree Hill and Parrot Rock frame the bay.",
		Highlights: []string{"Whale watching", "Coconut Tree Hill", "Parrot Rock", "Secret Beach"},
	},
	{
		ID:              "6",
		Name:            "Yala National Park",
		Location:        "Tissamaharama, Southern Province",
		Image:           "yala.jpg",
		Rating:          4.7,
		Category:        "wildlife",
		Description:     "Dry-zone park with one of the highest leopard densities in the world, plus elephants and sloth bears.",
		Transport:       []string{"Jeep safari", "Car"},
		Status:          "Open",
		BestTimeToVisit: "February to June",
		FullDescription: "Yala covers scrub jungle, lagoons and coastline on the south-east of the island. " +
			"Morning and afternoon jeep safaris give the best chance of spotting leopards near the rocky outcrops of Block 1.",
		Highlights: []string{"Leopard safari", "Elephant herds", "Bird watching", "Sithulpawwa rock temple"},
	},
	{
		ID:              "7",
		Name:            "Nuwara Eliya",
		Location:        "Nuwara Eliya, Central Province",
		Image:           "nuwara-eliya.jpg",
		Rating:          4.4,
		Category:        "nature",
		Description:     "Cool highland town of tea plantations, flower gardens and colonial bungalows.",
		Transport:       []string{"Train", "Bus", "Car"},
		Status:          "Open",
		BestTimeToVisit: "March to May",
		FullDescription: "Known as Little England, Nuwara Eliya sits at almost 1,900 metres. " +
			"Tea factory tours, Gregory Lake and the Horton Plains plateau with World's End are within easy reach.",
		Highlights: []string{"Gregory Lake", "Tea factory tour", "Horton Plains", "Hakgala Botanical Garden"},
	},
	{
		ID:              "8",
		Name:            "Arugam Bay",
		Location:        "Arugam Bay, Eastern Province",
		Image:           "arugam-bay.jpg",
		Rating:          4.5,
		Category:        "adventure",
		Description:     "Laid-back east coast bay famous for its point breaks and lagoon safaris.",
		Transport:       []string{"Bus", "Car", "Tuk-tuk"},
		Status:          "Seasonal",
		BestTimeToVisit: "May to September",
		FullDescription: "Arugam Bay draws surfers from around the world during the east coast season. " +
			"Between sessions, Kumana National Park and the Pottuvil lagoon offer wildlife and mangrove trips.",
		Highlights: []string{"Main Point surf break", "Pottuvil lagoon", "Kumana National Park", "Elephant Rock"},
	},
}
