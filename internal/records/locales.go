package records

import (
	"strings"

	"github.com/JonMunkholm/fakedata/internal/region"
)

// locale holds the word lists and formats one region draws from.
// '#' in formats is replaced by a random digit.
type locale struct {
	region         region.Region
	maleFirst      []string
	femaleFirst    []string
	last           []string
	feminize       func(last string) string
	prefixes       []string
	streets        []string
	addressFormats []string
	phoneFormats   []string
}

var german = &locale{
	region: region.DE,
	maleFirst: []string{
		"Alexander", "Andreas", "Benedikt", "Christian", "Daniel", "Dieter", "Elias",
		"Felix", "Florian", "Frank", "Friedrich", "Günter", "Hans", "Jan", "Jonas",
		"Jürgen", "Klaus", "Lukas", "Markus", "Matthias", "Maximilian", "Niklas",
		"Paul", "Peter", "Ralf", "Sebastian", "Stefan", "Thomas", "Uwe", "Wolfgang",
	},
	femaleFirst: []string{
		"Anja", "Anna", "Birgit", "Charlotte", "Claudia", "Emma", "Franziska", "Gabriele",
		"Hannah", "Heike", "Ingrid", "Jana", "Julia", "Karin", "Katrin", "Laura",
		"Lea", "Lena", "Marie", "Monika", "Petra", "Sabine", "Sandra", "Sophie",
		"Stefanie", "Susanne", "Ursula", "Ute", "Yvonne", "Zoe",
	},
	last: []string{
		"Bauer", "Becker", "Braun", "Fischer", "Frank", "Hartmann", "Hoffmann",
		"Hofmann", "Jung", "Keller", "Klein", "Koch", "Krause", "Krüger", "Lange",
		"Lehmann", "Meyer", "Müller", "Neumann", "Richter", "Schäfer", "Schmidt",
		"Schmitz", "Schneider", "Schröder", "Schulz", "Schwarz", "Wagner", "Weber",
		"Werner", "Wolf", "Zimmermann",
	},
	prefixes: []string{"Dr.", "Prof. Dr."},
	streets: []string{
		"Ahornweg", "Bahnhofstraße", "Berliner Straße", "Birkenweg", "Blumenstraße",
		"Dorfstraße", "Friedhofstraße", "Gartenstraße", "Goethestraße", "Hauptstraße",
		"Kirchgasse", "Kirchstraße", "Lindenstraße", "Marktplatz", "Mühlenweg",
		"Parkstraße", "Poststraße", "Ringstraße", "Schillerstraße", "Schulstraße",
		"Sonnenstraße", "Waldstraße", "Wiesenweg", "Am Sportplatz", "Im Winkel",
	},
	addressFormats: []string{
		"{street} {building}",
		"{street} {building}a",
		"{street} {building}b",
	},
	phoneFormats: []string{
		"0### #######",
		"0#### ######",
		"+49-###-#######",
		"(0###) #######",
		"015# ########",
		"017# #######",
	},
}

var polish = &locale{
	region: region.PL,
	maleFirst: []string{
		"Adam", "Andrzej", "Bartosz", "Dariusz", "Dawid", "Grzegorz", "Jakub", "Jan",
		"Janusz", "Jerzy", "Kamil", "Krzysztof", "Łukasz", "Maciej", "Marcin",
		"Marek", "Mateusz", "Michał", "Paweł", "Piotr", "Rafał", "Robert",
		"Sławomir", "Stanisław", "Szymon", "Tadeusz", "Tomasz", "Wojciech", "Zbigniew",
	},
	femaleFirst: []string{
		"Agnieszka", "Aleksandra", "Alicja", "Anna", "Barbara", "Beata", "Dorota",
		"Elżbieta", "Ewa", "Grażyna", "Halina", "Irena", "Joanna", "Justyna",
		"Katarzyna", "Krystyna", "Magdalena", "Małgorzata", "Maria", "Marta",
		"Monika", "Natalia", "Renata", "Teresa", "Urszula", "Wiesława", "Zofia",
	},
	last: []string{
		"Nowak", "Kowalski", "Wiśniewski", "Wójcik", "Kowalczyk", "Kamiński",
		"Lewandowski", "Zieliński", "Szymański", "Woźniak", "Dąbrowski",
		"Kozłowski", "Jankowski", "Mazur", "Kwiatkowski", "Krawczyk", "Piotrowski",
		"Grabowski", "Nowakowski", "Pawłowski", "Michalski", "Nowicki", "Adamczyk",
		"Dudek", "Zając", "Wieczorek", "Jabłoński", "Król", "Majewski", "Olszewski",
	},
	feminize: func(last string) string {
		for _, suffix := range []string{"ski", "cki", "dzki"} {
			if strings.HasSuffix(last, suffix) {
				return strings.TrimSuffix(last, "i") + "a"
			}
		}
		return last
	},
	prefixes: []string{"dr", "inż.", "mgr"},
	streets: []string{
		"Akacjowa", "Brzozowa", "Dworcowa", "Górna", "Grunwaldzka", "Jana Pawła II",
		"Kościuszki", "Krakowska", "Kwiatowa", "Leśna", "Lipowa", "Mickiewicza",
		"Ogrodowa", "Piłsudskiego", "Polna", "Słoneczna", "Sienkiewicza",
		"Szkolna", "Świętokrzyska", "Warszawska", "Wiejska", "Zielona", "Żeromskiego",
	},
	addressFormats: []string{
		"ul. {street} {building}",
		"ul. {street} {building}/{apartment}",
		"al. {street} {building}",
		"pl. {street} {building}",
	},
	phoneFormats: []string{
		"+48 ### ### ###",
		"+48 ## ### ## ##",
		"### ### ###",
		"## ### ## ##",
	},
}

var uzbek = &locale{
	region: region.UZ,
	maleFirst: []string{
		"Азиз", "Алишер", "Анвар", "Бахтиёр", "Бобур", "Даврон", "Жасур", "Жамшид",
		"Илхом", "Исломбек", "Камол", "Мухаммад", "Нодир", "Отабек", "Рустам",
		"Сардор", "Санжар", "Темур", "Улугбек", "Фаррух", "Хасан", "Шахзод",
		"Шерзод", "Эркин", "Юсуф",
	},
	femaleFirst: []string{
		"Азиза", "Барно", "Гулнора", "Гульнора", "Дилноза", "Дилфуза", "Зарина",
		"Зулфия", "Камола", "Лола", "Малика", "Мадина", "Мохира", "Нигора",
		"Нилуфар", "Одина", "Розалия", "Сабина", "Севара", "Феруза", "Шахноза",
		"Шоира", "Юлдуз", "Ёкутой",
	},
	last: []string{
		"Абдуллаев", "Алиев", "Ахмедов", "Бакиров", "Валиев", "Гафуров", "Иброгимов",
		"Исмаилов", "Каримов", "Кодиров", "Мирзаев", "Назаров", "Насруллаев",
		"Рахимов", "Рашидов", "Саидов", "Султанов", "Ташкентов", "Туляганов",
		"Умаров", "Усманов", "Хакимов", "Хасанов", "Юлдашев", "Юсупов",
	},
	feminize: func(last string) string {
		for _, suffix := range []string{"ов", "ев"} {
			if strings.HasSuffix(last, suffix) {
				return last + "а"
			}
		}
		return last
	},
	streets: []string{
		"Амира Темура", "Алишера Навои", "Бабура", "Бунёдкор", "Буюк Ипак Йули",
		"Мирзо Улугбека", "Мустакиллик", "Нукус", "Тараккиёт", "Фаргона йули",
		"Шота Руставели", "Юнусабад", "Чилонзор", "Мукими", "Беруни", "Катартал",
		"Лабзак", "Афросиаб", "Истиклол", "Кичик Халка йули",
	},
	addressFormats: []string{
		"ул. {street}, д. {building}",
		"ул. {street}, д. {building}, кв. {apartment}",
		"пр. {street}, д. {building}",
		"пер. {street}, д. {building}",
	},
	phoneFormats: []string{
		"+998 ## ###-##-##",
		"+998 (##) ###-##-##",
		"8 ## ### ## ##",
	},
}

var locales = map[region.Region]*locale{
	region.DE: german,
	region.PL: polish,
	region.UZ: uzbek,
}
