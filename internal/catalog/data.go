package catalog

var categoryDescriptors = []Descriptor{
	{Key: "symbolic", Label: "Ramziy ruh", Description: "Nur, ziyoli va qalbga yaqin ma'nolar."},
	{Key: "leadership", Label: "Rahbariy ohang", Description: "Jasoratli va yetakchi xarakterlar uchun."},
	{Key: "spiritual", Label: "Ma'naviy olam", Description: "Diniy va ruhiy mazmunga ega ismlar."},
	{Key: "heritage", Label: "An'anaviy", Description: "Ota-bobolar merosidan kelgan klassik ismlar."},
	{Key: "modern", Label: "Zamonaviy", Description: "Bugungi trend va yangi ma'no qo'shilgan ismlar."},
	{Key: "nature", Label: "Tabiat nafasi", Description: "Tabiat va unsurlardan ilhomlangan ismlar."},
}

var categoryCombos = []ComboOption{
	{Key: "symbolic_leadership", Label: "Ramziy ~ Rahbariy"},
	{Key: "spiritual_heritage", Label: "Ma'naviy ~ An'anaviy"},
	{Key: "modern_symbolic", Label: "Zamonaviy ~ Ramziy"},
	{Key: "nature_spiritual", Label: "Tabiat ~ Ma'naviy"},
}

var nameLibrary = []NameRecord{
	{
		Slug:         "zuhra",
		Name:         "Zuhra",
		Gender:       GenderGirl,
		Origin:       "Arabcha",
		Meaning:      "Tong yulduzi, yorug'lik taratuvchi nur.",
		Categories:   []string{"symbolic", "spiritual"},
		FocusValues:  []string{"ramziy", "nur", "ilhom"},
		Storytelling: "Zuhra sahar tongida dunyoga kelgan qizaloqlarga yorug'lik tilash uchun qo'yiladi.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Зухра"},
			{Language: "Turkcha", Value: "Zühre"},
			{Language: "Inglizcha", Value: "Morning Star"},
		},
		Regions:    []string{"Toshkent", "Qashqadaryo"},
		TrendIndex: TrendIndex{Monthly: 87, Yearly: 91},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2023/03/16/audio_c655df5b1a.mp3?filename=soft-bell-146622.mp3",
		Related:    []string{"Ziyo", "Zuhro", "Zulayho"},
	},
	{
		Slug:         "amir",
		Name:         "Amir",
		Gender:       GenderBoy,
		Origin:       "Arabcha",
		Meaning:      "Yetakchi, qo'mondon, rahbar.",
		Categories:   []string{"leadership", "heritage"},
		FocusValues:  []string{"rahbar", "jasorat"},
		Storytelling: "Amir ismi o'g'il bolalarga murod-maqsadini ortda qoldirmasligi uchun tanlanadi.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Амир"},
			{Language: "Turkcha", Value: "Emir"},
			{Language: "Inglizcha", Value: "Amir"},
		},
		Regions:    []string{"Farg'ona", "Toshkent"},
		TrendIndex: TrendIndex{Monthly: 93, Yearly: 88},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2022/03/15/audio_3febef0c3d.mp3?filename=soft-notification-136512.mp3",
		Related:    []string{"Amirbek", "Amirxon", "Emir"},
	},
	{
		Slug:         "shirin",
		Name:         "Shirin",
		Gender:       GenderGirl,
		Origin:       "Forscha",
		Meaning:      "Shirin so'zli, yoqimli muomala qiluvchi.",
		Categories:   []string{"symbolic", "heritage"},
		FocusValues:  []string{"ramziy", "mehribonlik"},
		Storytelling: "Shirin ismi Mehr bilan bog'liq bo'lib, iliqlikni ifodalaydi.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Ширин"},
			{Language: "Turkcha", Value: "Şirin"},
			{Language: "Inglizcha", Value: "Sweet"},
		},
		Regions:    []string{"Buxoro", "Samarqand"},
		TrendIndex: TrendIndex{Monthly: 81, Yearly: 79},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2021/09/13/audio_81808b4a31.mp3?filename=soft-ambient-8282.mp3",
		Related:    []string{"Shahnoza", "Gulshirin", "Mehriniso"},
	},
	{
		Slug:         "javlon",
		Name:         "Javlon",
		Gender:       GenderBoy,
		Origin:       "Turkiy",
		Meaning:      "G'ayrat va jasorat timsoli.",
		Categories:   []string{"leadership", "modern"},
		FocusValues:  []string{"rahbar", "jasorat", "zamonaviy"},
		Storytelling: "Javlon ismi harakat va dadillikni ifodalaydi.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Джавлон"},
			{Language: "Turkcha", Value: "Cavlon"},
			{Language: "Inglizcha", Value: "Valor"},
		},
		Regions:    []string{"Namangan", "Andijon"},
		TrendIndex: TrendIndex{Monthly: 76, Yearly: 84},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2021/11/16/audio_2bbd603cd8.mp3?filename=warm-guitar-logo-12414.mp3",
		Related:    []string{"Javohir", "Jasur", "Javod"},
	},
	{
		Slug:         "muslima",
		Name:         "Muslima",
		Gender:       GenderGirl,
		Origin:       "Arabcha",
		Meaning:      "Islom diniga sodiq, muslim ayol.",
		Categories:   []string{"spiritual", "heritage"},
		FocusValues:  []string{"ma'naviy", "ramziy"},
		Storytelling: "Muslima ismi sokinlik va sodiqlikni o'zida mujassam etadi.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Муслима"},
			{Language: "Turkcha", Value: "Müslime"},
			{Language: "Inglizcha", Value: "Muslima"},
		},
		Regions:    []string{"Andijon", "Namangan"},
		TrendIndex: TrendIndex{Monthly: 89, Yearly: 94},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2021/08/04/audio_17b9987dd8.mp3?filename=soft-logo-6124.mp3",
		Related:    []string{"Mushtariy", "Mubina", "Muhsina"},
	},
	{
		Slug:         "bilol",
		Name:         "Bilol",
		Gender:       GenderBoy,
		Origin:       "Arabcha",
		Meaning:      "Halovat beruvchi, qalbni taskin etuvchi.",
		Categories:   []string{"spiritual", "symbolic"},
		FocusValues:  []string{"ma'naviy", "ramziy", "ilhom"},
		Storytelling: "Bilol ismi tarixda sahobalar bilan bog'liq bo'lib, ezgulikni bildiradi.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Билал"},
			{Language: "Turkcha", Value: "Bilal"},
			{Language: "Inglizcha", Value: "Bilal"},
		},
		Regions:    []string{"Surxondaryo", "Toshkent"},
		TrendIndex: TrendIndex{Monthly: 97, Yearly: 90},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2022/10/24/audio_8d3b8b1dcb.mp3?filename=clean-notification-124058.mp3",
		Related:    []string{"Biloliddin", "Bilola", "Nilufar"},
	},
	{
		Slug:         "laylo",
		Name:         "Laylo",
		Gender:       GenderGirl,
		Origin:       "Forscha",
		Meaning:      "Tungi huzur, romantik ohang.",
		Categories:   []string{"modern", "symbolic"},
		FocusValues:  []string{"ramziy", "muloyim"},
		Storytelling: "Laylo ismi she'riyat va muhabbat bilan bog'liq.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Лайло"},
			{Language: "Turkcha", Value: "Leyla"},
			{Language: "Inglizcha", Value: "Layla"},
		},
		Regions:    []string{"Toshkent", "Samarqand"},
		TrendIndex: TrendIndex{Monthly: 92, Yearly: 96},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2022/03/10/audio_c1889958cf.mp3?filename=soft-intro-135464.mp3",
		Related:    []string{"Layloyim", "Laziza", "Royhon"},
	},
	{
		Slug:         "islom",
		Name:         "Islom",
		Gender:       GenderBoy,
		Origin:       "Arabcha",
		Meaning:      "Tinchlik, totuvlik va islom dini nomi.",
		Categories:   []string{"spiritual", "heritage"},
		FocusValues:  []string{"ma'naviy", "ramziy", "jahongir"},
		Storytelling: "Islom ismi e'tiqod va birlik timsoli sifatida tanlanadi.",
		Translations: []Translation{
			{Language: "Ruscha", Value: "Ислам"},
			{Language: "Turkcha", Value: "İslam"},
			{Language: "Inglizcha", Value: "Islam"},
		},
		Regions:    []string{"Qoraqalpog'iston", "Toshkent"},
		TrendIndex: TrendIndex{Monthly: 84, Yearly: 90},
		AudioURL:   "https://cdn.pixabay.com/download/audio/2022/09/20/audio_55a0189da2.mp3?filename=gentle-sound-121110.mp3",
		Related:    []string{"Imron", "Ilyos", "Imod"},
	},
}

var trendMovements = []TrendInsight{
	{Name: "Amir", Movement: MovementUp, Score: 93, Region: "Farg'ona", Gender: GenderBoy},
	{Name: "Laylo", Movement: MovementUp, Score: 96, Region: "Toshkent", Gender: GenderGirl},
	{Name: "Bilol", Movement: MovementSteady, Score: 90, Region: "Surxondaryo", Gender: GenderBoy},
	{Name: "Zuhra", Movement: MovementUp, Score: 91, Region: "Qashqadaryo", Gender: GenderGirl},
	{Name: "Muslima", Movement: MovementSteady, Score: 94, Region: "Namangan", Gender: GenderGirl},
	{Name: "Javlon", Movement: MovementDown, Score: 84, Region: "Andijon", Gender: GenderBoy},
}

var communityPolls = []Poll{
	{
		Question: "2024-yilda qaysi ism trendni zabt etadi?",
		Options:  []string{"Laylo", "Amir", "Muslima", "Bilol"},
	},
	{
		Question: "Qaysi yo'nalish sizga ko'proq yoqadi?",
		Options:  []string{"Ramziy", "Rahbariy", "Ma'naviy", "Zamonaviy"},
	},
}
