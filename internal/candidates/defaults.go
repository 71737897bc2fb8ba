package candidates

import "lunch-bot/internal/restaurant"

// DefaultRegion selects no regional list.
const DefaultRegion = "default"

func defaultRestaurants() []restaurant.Restaurant {
	return []restaurant.Restaurant{
		{Name: "Matsuya", Genre: "Gyudon, set meals", Address: "Fukui, Tsuruga and more", URL: "https://www.matsuyafoods.co.jp/", OrderURL: "https://www.matsuyafoods.co.jp/menu/", Description: "Quick beef bowl chain"},
		{Name: "Sukiya", Genre: "Gyudon, curry", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.sukiya.jp/", OrderURL: "https://www.sukiya.jp/menu/", Description: "24-hour beef bowl chain"},
		{Name: "Yoshinoya", Genre: "Gyudon, set meals", Address: "Fukui, Tsuruga and more", URL: "https://www.yoshinoya.com/", OrderURL: "https://www.yoshinoya.com/menu/", Description: "Long-established beef bowl chain"},
		{Name: "Nakau", Genre: "Udon, oyakodon", Address: "Fukui, Tsuruga and more", URL: "https://www.nakau.co.jp/", OrderURL: "https://www.nakau.co.jp/menu/", Description: "Udon and rice bowls"},
		{Name: "Gusto", Genre: "Family restaurant", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.skylark.co.jp/gusto/", OrderURL: "https://www.skylark.co.jp/gusto/menu/", Description: "Affordable family restaurant"},
		{Name: "Saizeriya", Genre: "Italian", Address: "Fukui, Tsuruga and more", URL: "https://www.saizeriya.co.jp/", OrderURL: "https://www.saizeriya.co.jp/menu/", Description: "Budget Italian restaurant"},
		{Name: "CoCo Ichibanya", Genre: "Curry", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.ichibanya.co.jp/", OrderURL: "https://www.ichibanya.co.jp/menu/", Description: "Curry house chain"},
		{Name: "Marugame Seimen", Genre: "Udon", Address: "Fukui, Tsuruga and more", URL: "https://www.marugame-seimen.com/", OrderURL: "https://www.marugame-seimen.com/menu/", Description: "Sanuki udon"},
		{Name: "Hanamaru Udon", Genre: "Udon", Address: "Fukui and more", URL: "https://www.hanamaruudon.com/", OrderURL: "https://www.hanamaruudon.com/menu/", Description: "Self-service udon"},
		{Name: "KFC", Genre: "Fried chicken", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.kfc.co.jp/", OrderURL: "https://www.kfc.co.jp/menu/", Description: "Fried chicken"},
		{Name: "McDonald's", Genre: "Burgers", Address: "Fukui, Tsuruga, Echizen, Sabae and more", URL: "https://www.mcdonalds.co.jp/", OrderURL: "https://www.mcdonalds.co.jp/menu/", Description: "Burger chain"},
		{Name: "MOS Burger", Genre: "Burgers", Address: "Fukui, Tsuruga and more", URL: "https://www.mos.jp/", OrderURL: "https://www.mos.jp/menu/", Description: "Japanese burger chain"},
		{Name: "Gyoza no Ohsho", Genre: "Chinese", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.ohsho.co.jp/", OrderURL: "https://www.ohsho.co.jp/menu/", Description: "Gyoza and Chinese dishes"},
		{Name: "Ringer Hut", Genre: "Champon", Address: "Fukui, Tsuruga and more", URL: "https://www.ringerhut.jp/", OrderURL: "https://www.ringerhut.jp/menu/", Description: "Nagasaki champon noodles"},
		{Name: "Ippudo", Genre: "Ramen", Address: "Fukui and more", URL: "https://www.ippudo.com/", OrderURL: "https://www.ippudo.com/menu/", Description: "Hakata tonkotsu ramen"},
		{Name: "Starbucks", Genre: "Cafe", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.starbucks.co.jp/", OrderURL: "https://www.starbucks.co.jp/menu/", Description: "Coffee chain"},
		{Name: "Doutor", Genre: "Cafe", Address: "Fukui, Tsuruga and more", URL: "https://www.doutor.co.jp/", OrderURL: "https://www.doutor.co.jp/menu/", Description: "Affordable coffee chain"},
		{Name: "Komeda Coffee", Genre: "Cafe", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.komeda.co.jp/", OrderURL: "https://www.komeda.co.jp/menu/", Description: "Nagoya-style coffee house"},
		{Name: "Bikkuri Donkey", Genre: "Hamburg steak", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.bikkuri-donkey.com/", OrderURL: "https://www.bikkuri-donkey.com/menu/", Description: "Hamburg steak restaurant"},
		{Name: "Kappa Sushi", Genre: "Conveyor sushi", Address: "Fukui, Tsuruga, Echizen and more", URL: "https://www.kappasushi.jp/", OrderURL: "https://www.kappasushi.jp/menu/", Description: "Budget conveyor-belt sushi"},
	}
}

func regionalRestaurants() map[string][]restaurant.Restaurant {
	return map[string][]restaurant.Restaurant{
		"fukui": {
			{Name: "Hachiban Ramen", Genre: "Ramen", Address: "Across Fukui prefecture", URL: "https://www.hachiban.jp/", OrderURL: "https://www.hachiban.jp/menu/", Description: "Hokuriku vegetable ramen"},
			{Name: "Europe-ken", Genre: "Western", Address: "Fukui, Tsuruga and more", URL: "https://www.europe-ken.com/", Description: "Home of Fukui sauce katsudon"},
			{Name: "Akiyoshi", Genre: "Yakitori", Address: "Across Fukui prefecture", URL: "https://www.akiyoshi.co.jp/", Description: "Fukui-born yakitori chain"},
			{Name: "Tonkatsu Masachan", Genre: "Tonkatsu", Address: "Fukui, Tsuruga and more", Description: "Local tonkatsu favourite"},
			{Name: "Ramen Kamizuki", Genre: "Ramen", Address: "Fukui and more", Description: "Popular Fukui ramen shop"},
			{Name: "Fuku Soba", Genre: "Soba, udon", Address: "Across Fukui prefecture", Description: "Local soba and udon chain"},
			{Name: "Echizen Soba", Genre: "Soba", Address: "Across Fukui prefecture", Description: "Echizen oroshi soba"},
			{Name: "Wakasaya", Genre: "Seafood, set meals", Address: "Tsuruga, Obama and more", Description: "Fresh Wakasa Bay seafood"},
		},
	}
}
