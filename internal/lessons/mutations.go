package lessons

import (
	"fmt"
	"math/rand/v2"
)

// Whole-table checks: a statement that touches the wrong rows fails them.
const (
	zooAnimals   = "SELECT * FROM animals ORDER BY id"
	zooExhibits  = "SELECT * FROM exhibits ORDER BY id"
	gamePrices   = "SELECT id, title, price FROM games ORDER BY id"
	gameSales    = "SELECT id, title, on_sale FROM games ORDER BY id"
	inboxIDs     = "SELECT id FROM emails ORDER BY id"
	exampleItems = "SELECT * FROM example_items ORDER BY id"
)

func lessonInsert() Lesson {
	return Lesson{
		ID:    9,
		Title: "INSERT INTO",
		Theme: "Zoo: animals, exhibits, habitats",
		Schema: `CREATE TABLE exhibits (id INT, name TEXT, biome TEXT);
CREATE TABLE animals (id INT, name TEXT, species TEXT, exhibit_id INT, weight_kg REAL, endangered INT);
INSERT INTO exhibits VALUES (1,'Tropical House','Tropical'),(2,'African Plains','Savanna'),(3,'Arctic Zone','Arctic');
INSERT INTO animals VALUES (1,'Ellie','Elephant',2,4500.0,1),(2,'Leo','Lion',2,190.0,0),(3,'Penny','Penguin',3,5.5,0),(4,'Kira','Tiger',1,220.0,1),(5,'Splash','Seal',3,85.0,0),(6,'Mango','Toucan',1,0.6,0),(7,'Frost','Polar Bear',3,450.0,1),(8,'Zara','Zebra',2,350.0,0);`,
		SchemaDisplay: "exhibits(id INT, name TEXT, biome TEXT)\nanimals(id INT, name TEXT, species TEXT, exhibit_id INT, weight_kg REAL, endangered INT)",
		DefaultQuery:  "SELECT * FROM animals;",
		Exercises: []Exercise{
			{
				Instruction: "Insert a new animal: id=9, name='Coco', species='Parrot', exhibit_id=1, weight_kg=1.2, endangered=0.",
				Hint:        "INSERT INTO animals VALUES (9,'Coco','Parrot',1,1.2,0)",
				Solution:    "INSERT INTO animals VALUES (9,'Coco','Parrot',1,1.2,0)",
				Verify:      zooAnimals,
			},
			{
				Instruction: "Insert two animals at once: (10,'Rex','Iguana',1,3.5,0) and (11,'Nala','Giraffe',2,800.0,1).",
				Hint:        "Use multiple value tuples separated by commas",
				Solution:    "INSERT INTO animals VALUES (10,'Rex','Iguana',1,3.5,0),(11,'Nala','Giraffe',2,800.0,1)",
				Verify:      zooAnimals,
			},
			{
				Instruction: "Insert a new exhibit: id=4, name='Nocturnal Cave', biome='Underground'.",
				Hint:        "INSERT INTO exhibits VALUES (...)",
				Solution:    "INSERT INTO exhibits VALUES (4,'Nocturnal Cave','Underground')",
				Verify:      zooExhibits,
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				names := []string{"Pip", "Boo", "Rex", "Sunny", "Dash"}
				species := []string{"Gecko", "Frog", "Owl", "Snake", "Rabbit"}
				i := r.IntN(len(names))
				return Question{
					Type: Write,
					Prompt: fmt.Sprintf("Insert a new animal: id=9, name='%s', species='%s', exhibit_id=1, weight_kg=2.0, endangered=0.",
						names[i], species[i]),
					Solution: fmt.Sprintf("INSERT INTO animals VALUES (9,'%s','%s',1,2.0,0)", names[i], species[i]),
					Verify:   zooAnimals,
				}
			},
			choice("What happens if you INSERT fewer values than columns?",
				"Error: column count mismatch", "Missing columns get NULL", "It works fine", "Extra columns are ignored"),
			choice("Which is correct syntax?",
				"INSERT INTO t VALUES (1, 'a')", "INSERT VALUES INTO t (1, 'a')", "INSERT t INTO VALUES (1, 'a')", "INTO INSERT t VALUES (1, 'a')"),
			fixV("Fix this query:",
				"INSERT INTO animals VALUE (9,'Pip','Gecko',1,2.0,0);",
				"INSERT INTO animals VALUES (9,'Pip','Gecko',1,2.0,0);",
				zooAnimals),
			fixV("Fix this query:",
				"INSERT animals VALUES (9,'Pip','Gecko',1,2.0,0);",
				"INSERT INTO animals VALUES (9,'Pip','Gecko',1,2.0,0);",
				zooAnimals),
			func(r *rand.Rand) Question {
				n := Pick(r, "Socks", "Blue", "Tank")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Insert exhibit id=4, name='%s Den', biome='Forest'.", n),
					Solution: fmt.Sprintf("INSERT INTO exhibits VALUES (4,'%s Den','Forest')", n),
					Verify:   zooExhibits,
				}
			},
		},
	}
}

func lessonUpdate() Lesson {
	return Lesson{
		ID:    10,
		Title: "UPDATE",
		Theme: "Video Games: inventory, stats, prices",
		Schema: `CREATE TABLE games (id INT, title TEXT, genre TEXT, price REAL, rating REAL, copies_sold INT, on_sale INT);
INSERT INTO games VALUES (1,'Pixel Quest','RPG',39.99,8.5,120000,0),(2,'Speed Racer','Racing',29.99,7.2,85000,1),(3,'Dark Realms','RPG',49.99,9.1,200000,0),(4,'Puzzle Box','Puzzle',9.99,8.0,150000,0),(5,'Star Fleet','Strategy',34.99,7.8,95000,1),(6,'Ninja Storm','Action',24.99,6.9,70000,0),(7,'Farm Life','Simulation',19.99,8.3,180000,0),(8,'Cyber Run','Action',44.99,7.5,110000,0),(9,'Word Master','Puzzle',4.99,7.0,60000,1),(10,'Galaxy Wars','Strategy',39.99,8.8,160000,0);`,
		SchemaDisplay: "games(id INT, title TEXT, genre TEXT, price REAL, rating REAL, copies_sold INT, on_sale INT)",
		DefaultQuery:  "SELECT * FROM games;",
		Exercises: []Exercise{
			{
				Instruction: "Set the price of 'Pixel Quest' to 29.99.",
				Hint:        "UPDATE games SET price = 29.99 WHERE title = 'Pixel Quest'",
				Solution:    "UPDATE games SET price = 29.99 WHERE title = 'Pixel Quest'",
				Verify:      gamePrices,
			},
			{
				Instruction: "Put all RPG games on sale (set on_sale = 1).",
				Hint:        "UPDATE games SET on_sale = 1 WHERE genre = 'RPG'",
				Solution:    "UPDATE games SET on_sale = 1 WHERE genre = 'RPG'",
				Verify:      gameSales,
			},
			{
				Instruction: "Give all games rated above 8.0 a 10% price reduction.",
				Hint:        "SET price = price * 0.9 WHERE rating > 8.0",
				Solution:    "UPDATE games SET price = price * 0.9 WHERE rating > 8.0",
				Verify:      gamePrices,
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				game := Pick(r, "Pixel Quest", "Speed Racer", "Dark Realms", "Puzzle Box", "Star Fleet")
				price := Pick(r, "19.99", "24.99", "14.99")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Set the price of '%s' to %s.", game, price),
					Solution: fmt.Sprintf("UPDATE games SET price = %s WHERE title = '%s'", price, game),
					Verify:   gamePrices,
				}
			},
			func(r *rand.Rand) Question {
				genre := Pick(r, "RPG", "Action", "Puzzle", "Strategy")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Put all %s games on sale (set on_sale = 1).", genre),
					Solution: fmt.Sprintf("UPDATE games SET on_sale = 1 WHERE genre = '%s'", genre),
					Verify:   gameSales,
				}
			},
			choice("What happens if you run UPDATE without a WHERE clause?",
				"Every row in the table is updated", "Nothing happens", "Only the first row is updated", "An error occurs"),
			choice("Can you update multiple columns in one UPDATE?",
				"Yes, separate them with commas in SET", "No, you need separate UPDATE statements", "Only with a subquery", "Only for numeric columns"),
			fixV("Fix this query:",
				"UPDATE games price = 19.99 WHERE id = 1;",
				"UPDATE games SET price = 19.99 WHERE id = 1;",
				gamePrices),
			fixV("Fix this query:",
				"UPDATE SET games on_sale = 1 WHERE genre = 'RPG';",
				"UPDATE games SET on_sale = 1 WHERE genre = 'RPG';",
				gameSales),
		},
	}
}

func lessonDelete() Lesson {
	return Lesson{
		ID:    11,
		Title: "DELETE",
		Theme: "Email Inbox: managing messages",
		Schema: `CREATE TABLE emails (id INT, sender TEXT, subject TEXT, body TEXT, is_read INT, is_spam INT, received_date TEXT);
INSERT INTO emails VALUES (1,'alice@mail.com','Meeting Tomorrow','Let us meet at 3pm.',1,0,'2024-01-15'),(2,'promo@deals.com','50% OFF!!!','Buy now and save!',0,1,'2024-01-14'),(3,'bob@work.com','Project Update','The deadline moved.',1,0,'2024-01-13'),(4,'spam@fake.com','You Won!','Claim your prize!',0,1,'2024-01-12'),(5,'alice@mail.com','Re: Meeting','Confirmed.',1,0,'2024-01-15'),(6,'news@daily.com','Daily Digest','Top stories today.',0,0,'2024-01-14'),(7,'spam@junk.com','Free Gift','Click here now!',0,1,'2024-01-11'),(8,'bob@work.com','Lunch?','Want to grab lunch?',1,0,'2024-01-15'),(9,'promo@deals.com','Last Chance!','Sale ends tonight!',1,1,'2024-01-10'),(10,'carol@mail.com','Photos','Here are the photos.',0,0,'2024-01-13'),(11,'spam@fake.com','Urgent!!!','Act now!',0,1,'2024-01-09'),(12,'alice@mail.com','Weekend Plans','BBQ on Saturday?',0,0,'2024-01-16');`,
		SchemaDisplay: "emails(id INT, sender TEXT, subject TEXT, body TEXT, is_read INT, is_spam INT, received_date TEXT)",
		DefaultQuery:  "SELECT * FROM emails;",
		Exercises: []Exercise{
			{
				Instruction: "Delete all spam emails (is_spam = 1).",
				Hint:        "DELETE FROM emails WHERE is_spam = 1",
				Solution:    "DELETE FROM emails WHERE is_spam = 1",
				Verify:      inboxIDs,
			},
			{
				Instruction: "Delete all read emails from 'bob@work.com'.",
				Hint:        "WHERE is_read = 1 AND sender = 'bob@work.com'",
				Solution:    "DELETE FROM emails WHERE is_read = 1 AND sender = 'bob@work.com'",
				Verify:      inboxIDs,
			},
			{
				Instruction: "Delete emails received before '2024-01-12'.",
				Hint:        "WHERE received_date < '2024-01-12'",
				Solution:    "DELETE FROM emails WHERE received_date < '2024-01-12'",
				Verify:      inboxIDs,
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				sender := Pick(r, "alice@mail.com", "bob@work.com", "carol@mail.com")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Delete all emails from '%s'.", sender),
					Solution: fmt.Sprintf("DELETE FROM emails WHERE sender = '%s'", sender),
					Verify:   inboxIDs,
				}
			},
			func(*rand.Rand) Question {
				return Question{
					Type:     Write,
					Prompt:   "Delete all spam emails.",
					Solution: "DELETE FROM emails WHERE is_spam = 1",
					Verify:   inboxIDs,
				}
			},
			choice("What does DELETE FROM emails; (no WHERE) do?",
				"Deletes ALL rows from the table", "Does nothing", "Deletes the table itself", "Only deletes the first row"),
			choice("How can you preview which rows DELETE will remove?",
				"Run a SELECT with the same WHERE clause first", "You cannot preview", "Use DELETE PREVIEW", "Use EXPLAIN DELETE"),
			fixV("Fix this query:",
				"DELETE emails WHERE is_spam = 1;",
				"DELETE FROM emails WHERE is_spam = 1;",
				inboxIDs),
			fixV("Fix this query:",
				"DELETE FROM emails WHERE sender = alice@mail.com;",
				"DELETE FROM emails WHERE sender = 'alice@mail.com';",
				inboxIDs),
		},
	}
}

func lessonCreateTable() Lesson {
	return Lesson{
		ID:    12,
		Title: "CREATE TABLE & Data Types",
		Theme: "Free Design: build your own table",
		Schema: `CREATE TABLE example_items (id INTEGER PRIMARY KEY, name TEXT, quantity INT, price REAL, created TEXT);
INSERT INTO example_items VALUES (1,'Widget',100,9.99,'2024-01-01'),(2,'Gadget',50,24.99,'2024-01-05'),(3,'Doohickey',200,4.99,'2024-01-10'),(4,'Thingamajig',75,14.99,'2024-01-15');`,
		SchemaDisplay: "example_items(id INTEGER PRIMARY KEY, name TEXT, quantity INT, price REAL, created TEXT)",
		DefaultQuery:  "SELECT * FROM example_items;",
		Exercises: []Exercise{
			{
				Instruction: "Create a table called 'students' with columns: id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INT, grade REAL.",
				Hint:        "CREATE TABLE students (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INT, grade REAL)",
				Solution:    "CREATE TABLE students (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INT, grade REAL)",
				Verify:      tableShape("students"),
			},
			{
				Instruction: "Insert a new item into example_items: id=5, name='Gizmo', quantity=150, price=19.99, created='2024-02-01'.",
				Hint:        "INSERT INTO example_items VALUES (5,'Gizmo',150,19.99,'2024-02-01')",
				Solution:    "INSERT INTO example_items VALUES (5,'Gizmo',150,19.99,'2024-02-01')",
				Verify:      exampleItems,
			},
			{
				Instruction: "Create a table 'products' with: id INTEGER PRIMARY KEY, name TEXT NOT NULL, price REAL DEFAULT 0, in_stock INT DEFAULT 1.",
				Hint:        "Use DEFAULT keyword for default values",
				Solution:    "CREATE TABLE products (id INTEGER PRIMARY KEY, name TEXT NOT NULL, price REAL DEFAULT 0, in_stock INT DEFAULT 1)",
				Verify:      tableShape("products"),
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				tbl := Pick(r, "pets", "vehicles", "recipes")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Create a table called '%s' with columns: id INTEGER PRIMARY KEY, name TEXT, category TEXT.", tbl),
					Solution: fmt.Sprintf("CREATE TABLE %s (id INTEGER PRIMARY KEY, name TEXT, category TEXT)", tbl),
					Verify:   tableShape(tbl),
				}
			},
			choice("Which SQLite type stores decimal numbers?",
				"REAL", "INTEGER", "TEXT", "DECIMAL"),
			choice("What does PRIMARY KEY do?",
				"Ensures each row has a unique identifier", "Sorts the table", "Makes the column required", "Encrypts the data"),
			choice("What does NOT NULL mean?",
				"The column must have a value (cannot be empty)", "The column must be zero", "The column is deleted", "The column is hidden"),
			fixV("Fix this query:",
				"CREATE TABLE tasks (id INTEGER PRIMARY KEY name TEXT);",
				"CREATE TABLE tasks (id INTEGER PRIMARY KEY, name TEXT);",
				tableShape("tasks")),
			fixV("Fix this query:",
				"CREATE TABL items (id INT, name TEXT);",
				"CREATE TABLE items (id INT, name TEXT);",
				tableShape("items")),
		},
	}
}
