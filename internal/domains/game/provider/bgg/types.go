package bgg

// XML shapes of the BGG XML API2 search and thing responses.

type valueAttr struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type searchResponse struct {
	Items []searchItem `xml:"item"`
}

type searchItem struct {
	ID   string `xml:"id,attr"`
	Type string `xml:"type,attr"`
}

type thingResponse struct {
	Items []thingItem `xml:"item"`
}

type thingItem struct {
	ID            string      `xml:"id,attr"`
	Type          string      `xml:"type,attr"`
	Names         []valueAttr `xml:"name"`
	Image         *string     `xml:"image"`
	Description   *string     `xml:"description"`
	YearPublished *valueAttr  `xml:"yearpublished"`
	MinPlayers    *valueAttr  `xml:"minplayers"`
	MaxPlayers    *valueAttr  `xml:"maxplayers"`
	PlayingTime   *valueAttr  `xml:"playingtime"`
	Links         []valueAttr `xml:"link"`
	AverageWeight *valueAttr  `xml:"statistics>ratings>averageweight"`
}
